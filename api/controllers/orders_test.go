package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ayoolabs/storefront-backend/internal/orders"
	"github.com/ayoolabs/storefront-backend/pkg/enums"
	pkgerrors "github.com/ayoolabs/storefront-backend/pkg/errors"
)

type stubOrderService struct {
	dto        *orders.OrderDTO
	list       []orders.OrderDTO
	err        error
	gotStatus  enums.OrderStatus
	gotOrderID uuid.UUID
}

func (s *stubOrderService) List(context.Context, uuid.UUID) ([]orders.OrderDTO, error) {
	return s.list, s.err
}

func (s *stubOrderService) Get(_ context.Context, _ uuid.UUID, orderID uuid.UUID) (*orders.OrderDTO, error) {
	s.gotOrderID = orderID
	return s.dto, s.err
}

func (s *stubOrderService) Create(context.Context, uuid.UUID, orders.CreateOrderInput) (*orders.OrderDTO, error) {
	return s.dto, s.err
}

func (s *stubOrderService) UpdateStatus(_ context.Context, _ uuid.UUID, orderID uuid.UUID, status enums.OrderStatus) (*orders.OrderDTO, error) {
	s.gotOrderID = orderID
	s.gotStatus = status
	return s.dto, s.err
}

func (s *stubOrderService) Delete(_ context.Context, _ uuid.UUID, orderID uuid.UUID) error {
	s.gotOrderID = orderID
	return s.err
}

func orderRouter(svc orders.Service) http.Handler {
	r := chi.NewRouter()
	r.Get("/orders/{orderID}", OrderGet(svc, nil))
	r.Put("/orders/{orderID}/status", OrderStatusUpdate(svc, nil))
	r.Delete("/orders/{orderID}", OrderDelete(svc, nil))
	return r
}

func TestOrderStatusUpdateForwardsStatus(t *testing.T) {
	orderID := uuid.New()
	svc := &stubOrderService{dto: &orders.OrderDTO{ID: orderID, Status: enums.OrderStatusDelivered}}
	router := orderRouter(svc)

	req := authedRequest(http.MethodPut, "/orders/"+orderID.String()+"/status", []byte(`{"status":"Delivered"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotOrderID != orderID {
		t.Fatalf("expected order id %s got %s", orderID, svc.gotOrderID)
	}
	if svc.gotStatus != enums.OrderStatusDelivered {
		t.Fatalf("expected Delivered got %s", svc.gotStatus)
	}
}

func TestOrderStatusUpdateRejectsBadID(t *testing.T) {
	router := orderRouter(&stubOrderService{})

	req := authedRequest(http.MethodPut, "/orders/not-a-uuid/status", []byte(`{"status":"Delivered"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestOrderDeleteNotFound(t *testing.T) {
	svc := &stubOrderService{err: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}
	router := orderRouter(svc)

	req := authedRequest(http.MethodDelete, "/orders/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND got %s", envelope.Error.Code)
	}
	if envelope.Error.Message != "order not found" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
}

func TestOrderCreateRejectsMissingCustomer(t *testing.T) {
	handler := OrderCreate(&stubOrderService{}, nil)

	req := authedRequest(http.MethodPost, "/orders", []byte(`{"items":[{"product_name":"Cola","quantity":1,"unit_price":"1.50"}]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
	}
}
