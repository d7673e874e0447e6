package reportdelivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/Jonixmax/pokebank-go/internal/domain"
	"github.com/Jonixmax/pokebank-go/internal/middleware"
	"github.com/Jonixmax/pokebank-go/pkg/randompkg"
	"github.com/Jonixmax/pokebank-go/pkg/tokenpkg"
	"github.com/Jonixmax/pokebank-go/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testTokenMaker(t *testing.T) tokenpkg.Maker {
	t.Helper()

	key := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(key)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", key, err)
	}

	return tokenMaker
}

var allowAllSessions = middleware.SessionCheckerFunc(
	func(ctx context.Context, id uuid.UUID) error { return nil },
)

func TestChart(t *testing.T) {
	tokenMaker := testTokenMaker(t)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewMockService(ctrl)
	handler := NewHandler(service)

	server := gin.New()
	server.GET("/transactions/chart", middleware.AuthMiddleware(tokenMaker, allowAllSessions), handler.Chart)

	service.EXPECT().
		Counts(gomock.Any()).
		Times(1).
		Return(domain.Counters{Deposit: 2, Withdraw: 1, Payment: 3})

	req, err := http.NewRequest(http.MethodGet, "/transactions/chart", nil)
	if err != nil {
		t.Fatalf("Creating request error: %v", err)
	}

	err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, "0987654321", time.Minute)
	if err != nil {
		t.Fatalf("middleware.AddAuthorization(%+v) returned error: %v", req, err)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	if got := recorder.Code; got != http.StatusOK {
		t.Fatalf("Status code: got %v, want %v", got, http.StatusOK)
	}

	if ct := recorder.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}

	body := recorder.Body.String()

	if !strings.Contains(body, "Transactions by type") {
		t.Error("chart page does not contain the chart title")
	}

	for _, label := range []string{"Deposits", "Withdrawals", "Payments"} {
		if !strings.Contains(body, label) {
			t.Errorf("chart page does not contain label %q", label)
		}
	}
}

func TestReceipt(t *testing.T) {
	tokenMaker := testTokenMaker(t)

	account := domain.Account{Name: "Ash Ketchum", Number: "0987654321", Balance: "650.00"}

	ledger := []domain.Transaction{
		{Date: "9/1/2026, 10:15:00 AM", Category: domain.CategoryDeposit, Detail: "Salary", Amount: "150.00"},
	}

	testCases := []struct {
		name           string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transactions(gomock.Any()).
					Times(1).
					Return(ledger)
				service.EXPECT().
					Account(gomock.Any()).
					Times(1).
					Return(account)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "EmptyLedger",
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transactions(gomock.Any()).
					Times(1).
					Return([]domain.Transaction{})
				service.EXPECT().
					Account(gomock.Any()).
					Times(0)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrNoTransactions.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			handler := NewHandler(service)

			server := gin.New()
			server.GET("/transactions/receipt", middleware.AuthMiddleware(tokenMaker, allowAllSessions), handler.Receipt)

			tc.buildStubs(service)

			req, err := http.NewRequest(http.MethodGet, "/transactions/receipt", nil)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			err = middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, account.Number, time.Minute)
			if err != nil {
				t.Fatalf("middleware.AddAuthorization(%+v) returned error: %v", req, err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if tc.wantStatusCode != http.StatusOK {
				res := web.Response{}
				if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
					t.Errorf("Decoding response body error: %v", err)
				}

				if res.Error != tc.wantError {
					t.Errorf("res.Error = %q, want %q", res.Error, tc.wantError)
				}

				return
			}

			if ct := recorder.Header().Get("Content-Type"); ct != "application/pdf" {
				t.Errorf("Content-Type = %q, want %q", ct, "application/pdf")
			}

			cd := recorder.Header().Get("Content-Disposition")
			if !strings.Contains(cd, "Receipt_Deposit_") {
				t.Errorf("Content-Disposition = %q, want a Receipt_Deposit_<ts>.pdf attachment", cd)
			}

			if body := recorder.Body.Bytes(); len(body) < 4 || string(body[:4]) != "%PDF" {
				t.Error("response body is not a PDF document")
			}
		})
	}
}
