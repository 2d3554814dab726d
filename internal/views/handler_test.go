package views

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableside/internal/api"
	"tableside/internal/bridge"
	"tableside/internal/cart"
	"tableside/internal/qr"
	"tableside/internal/store"
)

// fakeBackend scripts the platform API with the happy-path fixtures:
// table ABC123 is table number 5 (capacity 4) at restaurant 9, whose
// menu has a 2500 pasta and a 1000 cola.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	backend := mux.NewRouter()

	backend.HandleFunc("/t/ABC123", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"restaurant_id":9,"hall_id":2,"table_id":3,"table_number":5,"capacity":4}`))
	})
	backend.HandleFunc("/t/{code}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Table not found"}`))
	})
	backend.HandleFunc("/restaurants/9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":9,"name":"Demo Cafe"}`))
	})
	backend.HandleFunc("/restaurants/9/menu", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"Mains","dishes":[
			{"id":1,"name":"Pasta","price":2500},
			{"id":2,"name":"Cola","price":1000}]}]`))
	})
	backend.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("password") != "Demo123!" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Incorrect email or password"}`))
			return
		}
		w.Write([]byte(`{"access_token":"tok","token_type":"bearer","user":{"id":1,"name":"Demo","role":"user"}}`))
	})
	backend.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Could not validate credentials"}`))
			return
		}
		w.Write([]byte(`{"id":1,"name":"Demo","role":"user"}`))
	})
	backend.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		var req api.OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		resp := map[string]interface{}{
			"id":           42,
			"status":       "pending",
			"table_id":     req.TableID,
			"tips_amount":  req.TipsAmount,
			"total_amount": 7500,
		}
		json.NewEncoder(w).Encode(resp)
	}).Methods("POST")
	backend.HandleFunc("/orders/42/pay", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"paid","total":7500}`))
	}).Methods("POST")
	backend.HandleFunc("/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": r.URL.Query().Get("status")})
	}).Methods("PATCH")
	backend.HandleFunc("/tables/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": r.URL.Query().Get("status")})
	}).Methods("PATCH")

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	return srv
}

type testStack struct {
	handler  *Handler
	router   *mux.Router
	sessions *store.SessionStore
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	backend := fakeBackend(t)

	kv, err := store.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	sessions := store.NewSessionStore(kv)

	h := NewHandler(
		api.NewClient(backend.URL, backend.Client(), sessions),
		sessions,
		cart.New(sessions, cart.PolicyAppend),
		bridge.New("ws://127.0.0.1:1"),
		qr.DefaultGenerator{},
		"https://menu.example.com",
		"https://api.qrserver.com/v1/create-qr-code/",
	)
	t.Cleanup(h.Bridge.Close)

	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return &testStack{handler: h, router: r, sessions: sessions}
}

func (s *testStack) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

type cartView struct {
	Lines  []cart.Line `json:"lines"`
	Totals cart.Totals `json:"totals"`
}

func TestGuestFlow_ScanAddCheck(t *testing.T) {
	s := newTestStack(t)

	// Scan the table QR.
	rec := s.do(t, http.MethodGet, "/t/ABC123", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	table, ok := s.sessions.Table()
	require.True(t, ok)
	assert.Equal(t, 5, table.TableNumber)
	assert.Equal(t, 4, table.Capacity)
	assert.Equal(t, "ABC123", table.ShortCode)

	// Ordering needs an account.
	require.NoError(t, s.sessions.SetToken("tok"))

	pasta := map[string]interface{}{"id": 1, "name": "Pasta", "price": 2500}
	cola := map[string]interface{}{"id": 2, "name": "Cola", "price": 1000}
	for _, dish := range []map[string]interface{}{pasta, pasta, cola} {
		rec = s.do(t, http.MethodPost, "/guest-menu/9/cart", dish)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/check", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var view cartView
	decodeBody(t, rec, &view)

	// Guest menu appends, so the second pasta is its own line.
	assert.Len(t, view.Lines, 3)
	assert.Equal(t, cart.Totals{
		Subtotal:          6000,
		ServiceFeePercent: 10,
		ServiceFee:        600,
		Total:             6600,
	}, view.Totals)
}

func TestGuestAddToCart_RedirectsWithoutSession(t *testing.T) {
	s := newTestStack(t)

	rec := s.do(t, http.MethodPost, "/guest-menu/9/cart",
		map[string]interface{}{"id": 1, "name": "Pasta", "price": 2500})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Zero(t, s.handler.Cart.Len())
}

func TestTableResolve_UnknownCode(t *testing.T) {
	s := newTestStack(t)

	rec := s.do(t, http.MethodGet, "/t/NOPE99", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, ok := s.sessions.Table()
	assert.False(t, ok)
}

func TestLogin_StoresSessionAndLanding(t *testing.T) {
	s := newTestStack(t)

	rec := s.do(t, http.MethodPost, "/login",
		map[string]string{"email": "demo.user@thanks.kz", "password": "Demo123!"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Landing string `json:"landing"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "/dashboard", resp.Landing)
	assert.Equal(t, "tok", s.sessions.Token())

	user, ok := s.sessions.User()
	require.True(t, ok)
	assert.Equal(t, 1, user.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	s := newTestStack(t)

	rec := s.do(t, http.MethodPost, "/login",
		map[string]string{"email": "demo.user@thanks.kz", "password": "wrong"})

	// Bad credentials render in place with the backend's message; the
	// login view must not bounce through the forced-logout redirect.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp["error"], "Incorrect email or password")
	assert.Empty(t, s.sessions.Token())
}

func TestCheckoutFlow_TipAndPay(t *testing.T) {
	s := newTestStack(t)
	require.NoError(t, s.sessions.SetToken("tok"))

	rec := s.do(t, http.MethodGet, "/t/ABC123", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	pasta := map[string]interface{}{"id": 1, "name": "Pasta", "price": 2500}
	cola := map[string]interface{}{"id": 2, "name": "Cola", "price": 1000}
	// The checkout cart merges repeat dishes into one line.
	for _, dish := range []map[string]interface{}{pasta, pasta, cola} {
		rec = s.do(t, http.MethodPost, "/menu/9/cart", dish)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 2, s.handler.Cart.Len())

	rec = s.do(t, http.MethodPost, "/checkout/tip", map[string]int{"percent": 15})
	require.Equal(t, http.StatusOK, rec.Code)

	var tipResp struct {
		Totals cart.Totals `json:"totals"`
	}
	decodeBody(t, rec, &tipResp)
	assert.Equal(t, int64(900), tipResp.Totals.Tip)
	assert.Equal(t, int64(7500), tipResp.Totals.Total)

	rec = s.do(t, http.MethodPost, "/checkout/pay", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var payResp struct {
		Order struct {
			ID         int   `json:"id"`
			TipsAmount int64 `json:"tips_amount"`
		} `json:"order"`
		Payment api.PaymentResult `json:"payment"`
	}
	decodeBody(t, rec, &payResp)
	assert.Equal(t, 42, payResp.Order.ID)
	assert.Equal(t, int64(900), payResp.Order.TipsAmount)
	assert.True(t, payResp.Payment.Success)

	// Paying clears the cart and the tip choice.
	assert.Zero(t, s.handler.Cart.Len())
	rec = s.do(t, http.MethodGet, "/checkout", nil)
	var after struct {
		Totals cart.Totals `json:"totals"`
	}
	decodeBody(t, rec, &after)
	assert.Zero(t, after.Totals.Tip)
	assert.Zero(t, after.Totals.Subtotal)
}

func TestSelectTip_LastChoiceWins(t *testing.T) {
	s := newTestStack(t)
	require.NoError(t, s.sessions.SetToken("tok"))

	rec := s.do(t, http.MethodPost, "/menu/9/cart",
		map[string]interface{}{"id": 1, "name": "Pasta", "price": 2500})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/checkout/tip", map[string]int64{"custom": 777})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/checkout/tip", map[string]int{"percent": 10})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Tip    cart.TipSelection `json:"tip"`
		Totals cart.Totals       `json:"totals"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, 10, resp.Tip.Percent)
	assert.Zero(t, resp.Tip.Custom)
	assert.Equal(t, int64(250), resp.Totals.Tip)
}

func TestSelectTip_RequiresAChoice(t *testing.T) {
	s := newTestStack(t)
	require.NoError(t, s.sessions.SetToken("tok"))

	rec := s.do(t, http.MethodPost, "/checkout/tip", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPay_NeedsTableContext(t *testing.T) {
	s := newTestStack(t)
	require.NoError(t, s.sessions.SetToken("tok"))

	rec := s.do(t, http.MethodPost, "/checkout/pay", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedViews_RedirectWithoutSession(t *testing.T) {
	s := newTestStack(t)

	for _, path := range []string{"/dashboard", "/checkout", "/my-orders", "/waiter", "/admin/analytics"} {
		rec := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestExpiredToken_ForcesLogout(t *testing.T) {
	s := newTestStack(t)
	require.NoError(t, s.sessions.SetToken("stale"))

	rec := s.do(t, http.MethodGet, "/profile", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Empty(t, s.sessions.Token())
}

func TestAdvanceOrder(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
		wantNext   string
	}{
		{
			name:       "explicit status",
			body:       map[string]string{"status": "ready"},
			wantStatus: http.StatusOK,
			wantNext:   "ready",
		},
		{
			name:       "next step from current",
			body:       map[string]string{"current": "cooking"},
			wantStatus: http.StatusOK,
			wantNext:   "ready",
		},
		{
			name:       "terminal order rejected",
			body:       map[string]string{"current": "completed"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := newTestStack(t)
			require.NoError(t, s.sessions.SetToken("tok"))

			rec := s.do(t, http.MethodPatch, "/waiter/orders/42/status", testCase.body)
			assert.Equal(t, testCase.wantStatus, rec.Code)
			if testCase.wantNext != "" {
				var resp map[string]string
				decodeBody(t, rec, &resp)
				assert.Equal(t, testCase.wantNext, resp["status"])
			}
		})
	}
}

func TestSetTableStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantStatus int
	}{
		{name: "known status", status: "reserved", wantStatus: http.StatusOK},
		{name: "unknown status rejected", status: "cleaning", wantStatus: http.StatusBadRequest},
		{name: "empty status rejected", status: "", wantStatus: http.StatusBadRequest},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			s := newTestStack(t)
			require.NoError(t, s.sessions.SetToken("tok"))

			rec := s.do(t, http.MethodPatch, "/waiter/tables/3/status",
				map[string]string{"status": testCase.status})
			assert.Equal(t, testCase.wantStatus, rec.Code)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	s := newTestStack(t)

	rec := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decodeBody(t, rec, &resp)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "disconnected", resp["socket"])
}

func TestLogout_ResetsBridgeAndFeed(t *testing.T) {
	s := newTestStack(t)
	require.NoError(t, s.sessions.SetToken("tok"))

	old := s.handler.Bridge
	s.handler.NewBridge = func() *bridge.Bridge { return bridge.New("ws://127.0.0.1:1") }
	s.handler.appendFeed(Notification{Event: bridge.EventNewOrder, OrderID: 1})

	rec := s.do(t, http.MethodPost, "/logout", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Empty(t, s.sessions.Token())
	assert.Equal(t, bridge.StateClosed, old.State())
	assert.NotSame(t, old, s.handler.Bridge)

	rec = s.do(t, http.MethodGet, "/check", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthDuringLogout(t *testing.T) {
	s := newTestStack(t)
	require.NoError(t, s.sessions.SetToken("tok"))
	s.handler.NewBridge = func() *bridge.Bridge { return bridge.New("ws://127.0.0.1:1") }

	// Logout swaps the bridge while health reads it; both must be safe
	// under concurrent requests.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				rec := s.do(t, http.MethodGet, "/health", nil)
				assert.Equal(t, http.StatusOK, rec.Code)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				s.do(t, http.MethodPost, "/logout", nil)
			}
		}()
	}
	wg.Wait()

	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
