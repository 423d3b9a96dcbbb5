package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ranaIslam01/server/internal/domain"
	"github.com/ranaIslam01/server/internal/service"
	"github.com/ranaIslam01/server/pkg/middleware"
	"github.com/ranaIslam01/server/pkg/pagination"
	"github.com/ranaIslam01/server/pkg/validator"
)

// ProductHandler handles HTTP requests for catalog and review endpoints.
type ProductHandler struct {
	service *service.ProductService
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{service: svc}
}

// --- Request DTOs ---

// CreateReviewRequest is the JSON request body for submitting a review.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,min=1"`
}

// --- Response types ---

// ProductListResponse is the paginated catalog page.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Total    int              `json:"total"`
}

// --- Handlers ---

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	keyword := r.URL.Query().Get("keyword")

	result, err := h.service.List(r.Context(), keyword, params)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: ProductListResponse{
		Products: result.Items,
		Page:     result.Page,
		Pages:    result.Pages,
		Total:    result.Total,
	}})
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "product not found"},
		})
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: product})
}

// CreateReview handles POST /api/products/{id}/reviews
func (h *ProductHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "UNAUTHORIZED", Message: "user not authenticated"},
		})
		return
	}

	productID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "product not found"},
		})
		return
	}

	userID, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "UNAUTHORIZED", Message: "user not authenticated"},
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	product, err := h.service.SubmitReview(r.Context(), service.SubmitReviewInput{
		ProductID: productID,
		UserID:    userID,
		UserName:  identity.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: product})
}
