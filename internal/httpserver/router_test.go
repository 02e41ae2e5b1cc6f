package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/pricing"
	authsvc "fashion-storefront/internal/service/auth"
	cartsvc "fashion-storefront/internal/service/cart"
	catalogsvc "fashion-storefront/internal/service/catalog"
	checkoutsvc "fashion-storefront/internal/service/checkout"
	ordersvc "fashion-storefront/internal/service/order"
	"fashion-storefront/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gocloud.dev/blob/memblob"
)

const testGuest = "6f1f1c5e-0a4e-4d8e-9a53-0a6c2b3f9d11"

type stubGuests struct{}

func (stubGuests) Issue() string { return testGuest }

func (stubGuests) Parse(raw string) (string, error) {
	if raw != "" && raw != testGuest {
		return "", domain.Invalid("guestId", "must be a UUID")
	}
	return raw, nil
}

type stubAuth struct {
	users map[string]*domain.User
}

func (s *stubAuth) RequestCode(context.Context, string) error { return nil }

func (s *stubAuth) VerifyCode(context.Context, string, string) (*domain.User, string, time.Time, error) {
	return nil, "", time.Time{}, errors.New("not used")
}

func (s *stubAuth) LookupByToken(_ context.Context, token string) (*domain.User, error) {
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, authsvc.ErrInvalidToken
}

func (s *stubAuth) SignOut(context.Context, string) error { return nil }

type stubCart struct {
	items   map[string][]domain.CartLine
	updates chan []domain.CartLine

	mu    sync.Mutex
	calls []string
}

func (s *stubCart) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *stubCart) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func newStubCart() *stubCart {
	return &stubCart{items: map[string][]domain.CartLine{}}
}

func (s *stubCart) key(sess cartsvc.Session) string {
	if sess.UserID != "" {
		return "user:" + sess.UserID
	}
	return "guest:" + sess.GuestID
}

func (s *stubCart) Get(_ context.Context, sess cartsvc.Session) ([]domain.CartLine, error) {
	s.record("get")
	return s.items[s.key(sess)], nil
}

func (s *stubCart) Add(_ context.Context, sess cartsvc.Session, productID string) ([]domain.CartLine, error) {
	if productID == "missing" {
		return nil, domain.ErrNotFound
	}
	k := s.key(sess)
	s.items[k] = append(s.items[k], domain.CartLine{
		ID:            productID,
		Title:         "Linen Dress",
		Price:         decimal.NewFromInt(400),
		OriginalPrice: decimal.NewFromInt(400),
		Quantity:      1,
	})
	return s.items[k], nil
}

func (s *stubCart) Remove(_ context.Context, sess cartsvc.Session, _ string) ([]domain.CartLine, error) {
	return s.items[s.key(sess)], nil
}

func (s *stubCart) SetQuantity(_ context.Context, sess cartsvc.Session, _ string, n int) ([]domain.CartLine, error) {
	if n < 0 {
		return nil, domain.Invalid("quantity", "must not be negative")
	}
	return s.items[s.key(sess)], nil
}

func (s *stubCart) Increment(_ context.Context, sess cartsvc.Session, _ string) ([]domain.CartLine, error) {
	return s.items[s.key(sess)], nil
}

func (s *stubCart) Decrement(_ context.Context, sess cartsvc.Session, _ string) ([]domain.CartLine, error) {
	return s.items[s.key(sess)], nil
}

func (s *stubCart) Clear(_ context.Context, sess cartsvc.Session) ([]domain.CartLine, error) {
	delete(s.items, s.key(sess))
	return nil, nil
}

func (s *stubCart) Summary(_ context.Context, sess cartsvc.Session, code string) (pricing.Summary, error) {
	return pricing.Apply(s.items[s.key(sess)], code, pricing.DefaultShippingRules())
}

func (s *stubCart) Watch(context.Context, cartsvc.Session) (<-chan []domain.CartLine, func(), error) {
	s.record("watch")
	if s.updates == nil {
		return nil, func() {}, cartsvc.ErrSignedOut
	}
	return s.updates, func() {}, nil
}

type stubCatalog struct {
	lastFilter catalogsvc.Filter
	err        error
}

func (s *stubCatalog) List(_ context.Context, f catalogsvc.Filter) ([]domain.Product, error) {
	s.lastFilter = f
	return []domain.Product{{ID: "p1", Title: "Linen Dress"}}, s.err
}

func (s *stubCatalog) Get(context.Context, string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubCatalog) Search(context.Context, string) ([]domain.Product, error) {
	return nil, s.err
}

type stubOrders struct {
	updateErr error
}

func (s *stubOrders) List(context.Context, domain.OrderStatus) ([]domain.Order, error) {
	return []domain.Order{{ID: "o1"}}, nil
}

func (s *stubOrders) Get(context.Context, string) (*domain.Order, error) {
	return &domain.Order{ID: "o1"}, nil
}

func (s *stubOrders) GetForUser(context.Context, string, string) (*domain.Order, error) {
	return nil, domain.ErrNotFound
}

func (s *stubOrders) UpdateStatus(_ context.Context, id string, to domain.OrderStatus) (*domain.Order, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &domain.Order{ID: id, Status: to}, nil
}

func (s *stubOrders) Invoice(_ context.Context, _ string, w io.Writer) error {
	_, err := io.WriteString(w, "%PDF-1.3 test")
	return err
}

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(zap.NewNop(), deps, Options{Shipping: pricing.DefaultShippingRules()})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func defaultDeps() Deps {
	return Deps{
		GuestSvc: stubGuests{},
		AuthSvc: &stubAuth{users: map[string]*domain.User{
			"shopper-token": {ID: "u1", Phone: "+919800000001"},
			"admin-token":   {ID: "u2", Phone: "+919800000002", IsAdmin: true},
		}},
		CatalogSvc: &stubCatalog{},
		CartSvc:    newStubCart(),
		OrderSvc:   &stubOrders{},
	}
}

func do(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router := testRouter(t, Deps{})
	rec := do(router, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuestIssue(t *testing.T) {
	router := testRouter(t, defaultDeps())
	rec := do(router, http.MethodPost, "/guest", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), testGuest) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestInvalidGuestHeader_BadRequest(t *testing.T) {
	router := testRouter(t, defaultDeps())
	rec := do(router, http.MethodGet, "/cart", "", map[string]string{guestHeader: "not-a-uuid"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"field":"guestId"`) {
		t.Fatalf("expected field in body: %s", rec.Body.String())
	}
}

func TestGuestCartFlow(t *testing.T) {
	router := testRouter(t, defaultDeps())
	guest := map[string]string{guestHeader: testGuest}

	rec := do(router, http.MethodPost, "/cart/items", `{"productId":"p1"}`, guest)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = do(router, http.MethodGet, "/cart", "", guest)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	var got cartResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ID != "p1" {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
	if !got.Summary.Shipping.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected shipping 50, got %s", got.Summary.Shipping)
	}
	if !got.Summary.Total.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected total 450, got %s", got.Summary.Total)
	}
}

func TestAddCartItem_MissingProduct(t *testing.T) {
	router := testRouter(t, defaultDeps())
	rec := do(router, http.MethodPost, "/cart/items", `{"productId":"missing"}`, map[string]string{guestHeader: testGuest})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddCartItem_MissingBody(t *testing.T) {
	router := testRouter(t, defaultDeps())
	rec := do(router, http.MethodPost, "/cart/items", `{}`, map[string]string{guestHeader: testGuest})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSetQuantity_Negative(t *testing.T) {
	router := testRouter(t, defaultDeps())
	rec := do(router, http.MethodPut, "/cart/items/p1", `{"quantity":-1}`, map[string]string{guestHeader: testGuest})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCartSummary_UnknownPromoKeepsTotals(t *testing.T) {
	router := testRouter(t, defaultDeps())
	guest := map[string]string{guestHeader: testGuest}
	do(router, http.MethodPost, "/cart/items", `{"productId":"p1"}`, guest)

	rec := do(router, http.MethodPost, "/cart/summary", `{"promoCode":"NOPE"}`, guest)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var got summaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.PromoError == "" {
		t.Fatalf("expected promoError, body=%s", rec.Body.String())
	}
	if !got.Summary.PromoDiscount.IsZero() {
		t.Fatalf("expected no promo discount, got %s", got.Summary.PromoDiscount)
	}
}

func TestCartEvents_RequiresSignIn(t *testing.T) {
	router := testRouter(t, defaultDeps())
	rec := do(router, http.MethodGet, "/cart/events", "", map[string]string{guestHeader: testGuest})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCartEvents_SubscribesBeforeSnapshot(t *testing.T) {
	cart := newStubCart()
	cart.updates = make(chan []domain.CartLine, 1)
	cart.updates <- []domain.CartLine{{ID: "p1", Price: decimal.NewFromInt(400), OriginalPrice: decimal.NewFromInt(400), Quantity: 2}}
	close(cart.updates)
	deps := defaultDeps()
	deps.CartSvc = cart
	srv := httptest.NewServer(testRouter(t, deps))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/cart/events", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer shopper-token")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read events: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", resp.StatusCode, body)
	}
	if n := strings.Count(string(body), "event:cart"); n != 2 {
		t.Fatalf("expected snapshot and one update, got %d events: %s", n, body)
	}
	if got := cart.recorded(); len(got) != 2 || got[0] != "watch" || got[1] != "get" {
		t.Fatalf("expected watch before get, got %v", got)
	}
}

func TestUnknownToken_Unauthorized(t *testing.T) {
	deps := defaultDeps()
	deps.AuthSvc = &stubAuth{users: map[string]*domain.User{}}
	router := testRouter(t, deps)
	rec := do(router, http.MethodGet, "/cart", "", map[string]string{"Authorization": "Bearer nope"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAdminRoutes_Guarded(t *testing.T) {
	router := testRouter(t, defaultDeps())

	rec := do(router, http.MethodGet, "/admin/orders", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}

	rec = do(router, http.MethodGet, "/admin/orders", "", map[string]string{"Authorization": "Bearer shopper-token"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("shopper: expected 403, got %d", rec.Code)
	}

	rec = do(router, http.MethodGet, "/admin/orders", "", map[string]string{"Authorization": "Bearer admin-token"})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminUpdateOrderStatus_InvalidTransition(t *testing.T) {
	deps := defaultDeps()
	deps.OrderSvc = &stubOrders{updateErr: ordersvc.ErrInvalidTransition}
	router := testRouter(t, deps)

	rec := do(router, http.MethodPut, "/admin/orders/o1/status", `{"status":"Pending"}`,
		map[string]string{"Authorization": "Bearer admin-token"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAdminInvoice_PDF(t *testing.T) {
	router := testRouter(t, defaultDeps())
	rec := do(router, http.MethodGet, "/admin/orders/o1/invoice", "", map[string]string{"Authorization": "Bearer admin-token"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "invoice-o1.pdf") {
		t.Fatalf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
	}
}

func TestMyOrder_OtherUsersOrderHidden(t *testing.T) {
	router := testRouter(t, defaultDeps())
	rec := do(router, http.MethodGet, "/me/orders/o1", "", map[string]string{"Authorization": "Bearer shopper-token"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListProducts_ParsesFilter(t *testing.T) {
	deps := defaultDeps()
	catalog := &stubCatalog{}
	deps.CatalogSvc = catalog
	router := testRouter(t, deps)

	rec := do(router, http.MethodGet, "/products?category=Dresses&minPrice=100&sort=price_asc&size=M", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	f := catalog.lastFilter
	if f.Category != "Dresses" || f.Size != "M" || f.Sort != catalogsvc.SortPriceAsc {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if f.MinPrice == nil || !f.MinPrice.Equal(decimal.NewFromInt(100)) || f.MaxPrice != nil {
		t.Fatalf("unexpected price bounds: %+v", f)
	}
}

func TestListProducts_InvalidPrice(t *testing.T) {
	router := testRouter(t, defaultDeps())
	rec := do(router, http.MethodGet, "/products?maxPrice=cheap", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"field":"maxPrice"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestSearch_InternalErrorHidden(t *testing.T) {
	deps := defaultDeps()
	deps.CatalogSvc = &stubCatalog{err: errors.New("connection reset")}
	router := testRouter(t, deps)

	rec := do(router, http.MethodGet, "/search?q=dress", "", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

func TestNilServiceRoutesAbsent(t *testing.T) {
	router := testRouter(t, defaultDeps())
	rec := do(router, http.MethodGet, "/blog", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

type stubCheckout struct {
	pending map[string]checkoutsvc.BuyNow
}

func (s *stubCheckout) Quote(_ context.Context, _ cartsvc.Session, _ checkoutsvc.QuoteInput) (pricing.Summary, error) {
	return pricing.Summary{}, nil
}

func (s *stubCheckout) SavePending(_ context.Context, guestID string, item checkoutsvc.BuyNow) error {
	s.pending[guestID] = item
	return nil
}

func (s *stubCheckout) TakePending(_ context.Context, guestID string) (*checkoutsvc.BuyNow, error) {
	item, ok := s.pending[guestID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.pending, guestID)
	return &item, nil
}

func (s *stubCheckout) Pay(context.Context, cartsvc.Session, checkoutsvc.PayInput) (*domain.Order, error) {
	return nil, errors.New("not used")
}

func (s *stubCheckout) ListOrders(context.Context, string) ([]domain.Order, error) {
	return nil, nil
}

func TestPendingPurchase_TakeIsPost(t *testing.T) {
	deps := defaultDeps()
	deps.CheckoutSvc = &stubCheckout{pending: map[string]checkoutsvc.BuyNow{}}
	router := testRouter(t, deps)
	guest := map[string]string{guestHeader: testGuest}

	rec := do(router, http.MethodPost, "/checkout/pending", `{"productId":"p1","quantity":2}`, guest)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d body=%s", rec.Code, rec.Body.String())
	}

	// A prefetching GET must not consume the saved item.
	rec = do(router, http.MethodGet, "/checkout/pending", "", guest)
	if rec.Code != http.StatusNotFound && rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected GET to be unrouted, got %d", rec.Code)
	}

	rec = do(router, http.MethodPost, "/checkout/pending/take", "", guest)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var item checkoutsvc.BuyNow
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if item.ProductID != "p1" || item.Quantity != 2 {
		t.Fatalf("unexpected item: %+v", item)
	}

	rec = do(router, http.MethodPost, "/checkout/pending/take", "", guest)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected second take to be 404, got %d", rec.Code)
	}
}

func TestServeFile_FromBucket(t *testing.T) {
	gin.SetMode(gin.TestMode)
	files := storage.NewBucket(memblob.OpenBucket(nil), "http://localhost:8080")
	defer files.Close()
	if _, err := files.Put(context.Background(), "products/1_summer..dress.jpg", strings.NewReader("image-bytes")); err != nil {
		t.Fatalf("put: %v", err)
	}
	router, err := buildRouter(zap.NewNop(), defaultDeps(), Options{Shipping: pricing.DefaultShippingRules(), Files: files})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	rec := do(router, http.MethodGet, "/files/products/1_summer..dress.jpg", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "image-bytes" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}

	rec = do(router, http.MethodGet, "/files/products/missing.jpg", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
