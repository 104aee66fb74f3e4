package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"velora/models"
	"velora/mq"
	"velora/rdx"
	"velora/store"
	"velora/utils"

	"github.com/julienschmidt/httprouter"
)

const productCacheTTL = 10 * time.Minute

func parseFilter(r *http.Request) store.ProductFilter {
	q := r.URL.Query()

	f := store.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	}
	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}
	if v, err := strconv.ParseBool(q.Get("featured")); err == nil {
		f.Featured = &v
	}
	if v, err := strconv.ParseBool(q.Get("inStock")); err == nil {
		f.InStock = &v
	}
	if tags := utils.SplitTags(q.Get("tags")); len(tags) > 0 {
		f.Tags = tags
	}

	f.Skip, f.Limit = utils.ParsePagination(r, 10, 100)
	return f
}

// GetProducts lists catalog products with filtering, sorting and pagination.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	f := parseFilter(r)
	list, total, err := store.Products.List(ctx, f)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	for i := range list {
		list[i].Discount = list[i].DiscountPercentage()
	}

	utils.RespondWithPage(w, http.StatusOK, list, len(list), total, utils.ParsePage(r), f.Limit)
}

// GetProduct returns a single product, served from the Redis cache when warm.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id := ps.ByName("productid")

	if cached, err := rdx.RdxGet("product:" + id); err == nil && cached != "" {
		var p models.Product
		if err := json.Unmarshal([]byte(cached), &p); err == nil {
			p.Discount = p.DiscountPercentage()
			utils.RespondWithData(w, http.StatusOK, "", p)
			return
		}
	}

	p, err := store.Products.ByID(ctx, id)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}
	p.Discount = p.DiscountPercentage()

	if data, err := json.Marshal(p); err == nil {
		if err := rdx.SetWithExpiry("product:"+id, string(data), productCacheTTL); err != nil {
			log.Println("GetProduct cache set failed:", err)
		}
	}

	utils.RespondWithData(w, http.StatusOK, "", p)
}

// GetCategories returns the fixed category list.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithData(w, http.StatusOK, "", models.Categories)
}

// CreateProduct adds a product to the catalog; admin only.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)
	if !actor.Role.IsAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
		return
	}

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("CreateProduct decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	p, err := Create(ctx, store.Products, req)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	mq.Emit(ctx, "product-created", p.ProductID, actor.UserID)
	utils.RespondWithData(w, http.StatusCreated, "Product created successfully", p)
}

// UpdateProduct replaces a product's mutable fields; admin only.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)
	if !actor.Role.IsAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
		return
	}

	id := ps.ByName("productid")

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Println("UpdateProduct decode error:", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	p, err := Update(ctx, store.Products, id, req)
	if err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if _, err := rdx.RdxDel("product:" + id); err != nil {
		log.Println("UpdateProduct cache invalidation failed:", err)
	}
	mq.Emit(ctx, "product-updated", id, actor.UserID)
	utils.RespondWithData(w, http.StatusOK, "Product updated successfully", p)
}

// DeleteProduct removes a product from the catalog; admin only.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	actor := utils.GetActorFromRequest(r)
	if !actor.Role.IsAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
		return
	}

	id := ps.ByName("productid")
	if err := Delete(ctx, store.Products, id); err != nil {
		utils.RespondWithAppError(w, err)
		return
	}

	if _, err := rdx.RdxDel("product:" + id); err != nil {
		log.Println("DeleteProduct cache invalidation failed:", err)
	}
	mq.Emit(ctx, "product-deleted", id, actor.UserID)
	utils.RespondWithData(w, http.StatusOK, "Product deleted successfully", nil)
}
