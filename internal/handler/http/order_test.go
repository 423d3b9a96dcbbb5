package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ranaIslam01/server/internal/domain"
	"github.com/ranaIslam01/server/internal/service"
	"github.com/ranaIslam01/server/pkg/middleware"
)

func orderTestHandler(orders *mockOrderRepo, products *mockProductRepo) *OrderHandler {
	svc := service.NewOrderService(orders, products, testLogger())
	return NewOrderHandler(svc)
}

func orderRouter(handler *OrderHandler, identity *middleware.Identity) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/orders", func(r chi.Router) {
		if identity != nil {
			r.Use(identityInjector(identity))
		}
		r.Post("/", handler.Create)
		r.Get("/mine", handler.ListMine)
		r.Get("/{id}", handler.Get)
	})
	return r
}

func TestCreateOrder_HandlerSuccess(t *testing.T) {
	orders := new(mockOrderRepo)
	products := new(mockProductRepo)

	userID := primitive.NewObjectID()
	identity := &middleware.Identity{UserID: userID.Hex(), Name: "John Doe"}
	router := orderRouter(orderTestHandler(orders, products), identity)

	productID := primitive.NewObjectID()
	products.On("GetByID", mock.Anything, productID).Return(testProduct(productID), nil)
	orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Order).ID = primitive.NewObjectID()
		}).
		Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/api/orders", CreateOrderRequest{
		OrderItems: []OrderItemRequest{{Product: productID.Hex(), Qty: 2}},
		ShippingAddress: ShippingAddressRequest{
			Address:    "123 Main St",
			City:       "Dhaka",
			PostalCode: "1207",
			Country:    "Bangladesh",
		},
		PaymentMethod: "Cash On Delivery",
	}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	assert.Contains(t, string(resp.Data), "Sony Playstation 5")

	orders.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestCreateOrder_MalformedProductID(t *testing.T) {
	orders := new(mockOrderRepo)
	products := new(mockProductRepo)

	identity := &middleware.Identity{UserID: primitive.NewObjectID().Hex()}
	router := orderRouter(orderTestHandler(orders, products), identity)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/api/orders", CreateOrderRequest{
		OrderItems: []OrderItemRequest{{Product: "garbage", Qty: 1}},
		ShippingAddress: ShippingAddressRequest{
			Address:    "123 Main St",
			City:       "Dhaka",
			PostalCode: "1207",
			Country:    "Bangladesh",
		},
		PaymentMethod: "PayPal",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_MissingShipping(t *testing.T) {
	orders := new(mockOrderRepo)
	products := new(mockProductRepo)

	identity := &middleware.Identity{UserID: primitive.NewObjectID().Hex()}
	router := orderRouter(orderTestHandler(orders, products), identity)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(t, http.MethodPost, "/api/orders", CreateOrderRequest{
		OrderItems:    []OrderItemRequest{{Product: primitive.NewObjectID().Hex(), Qty: 1}},
		PaymentMethod: "PayPal",
	}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestListMyOrders(t *testing.T) {
	orders := new(mockOrderRepo)
	products := new(mockProductRepo)

	userID := primitive.NewObjectID()
	identity := &middleware.Identity{UserID: userID.Hex()}
	router := orderRouter(orderTestHandler(orders, products), identity)

	orders.On("ListByUser", mock.Anything, userID).Return([]domain.Order{
		{ID: primitive.NewObjectID(), User: userID},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/mine", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	orders.AssertExpectations(t)
}

func TestGetOrder_NotOwner(t *testing.T) {
	orders := new(mockOrderRepo)
	products := new(mockProductRepo)

	identity := &middleware.Identity{UserID: primitive.NewObjectID().Hex()}
	router := orderRouter(orderTestHandler(orders, products), identity)

	orderID := primitive.NewObjectID()
	orders.On("GetByID", mock.Anything, orderID).
		Return(&domain.Order{ID: orderID, User: primitive.NewObjectID()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+orderID.Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	orders.AssertExpectations(t)
}

func TestOrders_Unauthenticated(t *testing.T) {
	orders := new(mockOrderRepo)
	products := new(mockProductRepo)
	router := orderRouter(orderTestHandler(orders, products), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/mine", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
