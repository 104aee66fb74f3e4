package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"velora/models"
	"velora/mq"
	"velora/store"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
)

// CreateOrder places a new order from the request body and clears the
// buyer's cart.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)
	if actor.UserID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("CreateOrder decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	order, err := Create(ctx, store.Orders, store.Products, store.Users, actor, req)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	mq.Emit(ctx, "order-created", order.OrderID, actor.UserID)
	utils.RespondWithData(w, http.StatusCreated, "Order created successfully", order)
}

// GetMyOrders lists the caller's orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)
	if actor.UserID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	skip, limit := utils.ParsePagination(r, 10, 50)
	list, total, err := List(ctx, store.Orders, models.Actor{UserID: actor.UserID, Role: models.RoleUser}, "", skip, limit)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithPage(w, http.StatusOK, list, len(list), total, utils.ParsePage(r), limit)
}

// GetAllOrders lists every order; admin only, optionally filtered by status.
func GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)
	if !actor.Role.IsAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
		return
	}

	status := models.OrderStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	skip, limit := utils.ParsePagination(r, 20, 100)
	list, total, err := List(ctx, store.Orders, actor, status, skip, limit)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithPage(w, http.StatusOK, list, len(list), total, utils.ParsePage(r), limit)
}

// GetOrder returns a single order to its owner or an admin.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)
	order, err := Get(ctx, store.Orders, actor, ps.ByName("orderid"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	utils.RespondWithData(w, http.StatusOK, "", order)
}

// MarkOrderPaid records payment on the caller's own order.
func MarkOrderPaid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)

	var result models.PaymentResult
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
			result = models.PaymentResult{}
		}
	}

	order, err := MarkPaid(ctx, store.Orders, actor, ps.ByName("orderid"), result)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	mq.Emit(ctx, "order-paid", order.OrderID, actor.UserID)
	utils.RespondWithData(w, http.StatusOK, "Order marked as paid", order)
}

// MarkOrderDelivered records delivery; admin only.
func MarkOrderDelivered(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)
	order, err := MarkDelivered(ctx, store.Orders, actor, ps.ByName("orderid"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	mq.Emit(ctx, "order-delivered", order.OrderID, actor.UserID)
	utils.RespondWithData(w, http.StatusOK, "Order marked as delivered", order)
}

// UpdateOrderStatus sets the order status; admin only.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)

	var payload struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateOrderStatus decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	order, err := SetStatus(ctx, store.Orders, actor, ps.ByName("orderid"), payload.Status)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	mq.Emit(ctx, "order-status-changed", order.OrderID, actor.UserID)
	utils.RespondWithData(w, http.StatusOK, "Order status updated", order)
}

// CancelOrder cancels an order that has not yet shipped; owner or admin.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)
	order, err := Cancel(ctx, store.Orders, actor, ps.ByName("orderid"))
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	mq.Emit(ctx, "order-cancelled", order.OrderID, actor.UserID)
	utils.RespondWithData(w, http.StatusOK, "Order cancelled successfully", order)
}
