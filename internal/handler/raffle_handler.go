package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/raffle/internal/model"
	"github.com/hitoshi/raffle/internal/raffle"
)

// RaffleServiceInterface は抽選ハンドラーが必要とするサービスインターフェース。
type RaffleServiceInterface interface {
	Create(ctx context.Context, in raffle.CreateInput) (*model.Raffle, error)
	Get(ctx context.Context, id string) (*model.Raffle, error)
}

// RaffleHandler は抽選の作成・取得のHTTPハンドラー。
type RaffleHandler struct {
	service RaffleServiceInterface
}

// NewRaffleHandler はRaffleHandlerを生成する。
func NewRaffleHandler(service RaffleServiceInterface) *RaffleHandler {
	return &RaffleHandler{service: service}
}

// createRaffleRequest は抽選作成リクエストのボディ。日時はRFC3339形式。
type createRaffleRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

type createRaffleResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// raffleResponse はAPIレスポンス用の抽選データ。
type raffleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Entries     []string  `json:"entries"`
	CreatedAt   time.Time `json:"createdAt"`
}

type getRaffleResponse struct {
	Raffle raffleResponse `json:"raffle"`
}

// CreateRaffle は抽選を作成する。
// POST /api/raffles
func (h *RaffleHandler) CreateRaffle(w http.ResponseWriter, r *http.Request) {
	var req createRaffleRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	created, err := h.service.Create(r.Context(), raffle.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createRaffleResponse{
		Message: "抽選を作成しました。",
		ID:      created.ID,
	})
}

// GetRaffle は抽選を1件返す。
// GET /api/raffles/{id} または GET /api/raffles?id=xxx
func (h *RaffleHandler) GetRaffle(w http.ResponseWriter, r *http.Request) {
	raffleID := chi.URLParam(r, "id")
	if raffleID == "" {
		raffleID = r.URL.Query().Get("id")
	}
	if raffleID == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("抽選IDを指定してください"))
		return
	}

	found, err := h.service.Get(r.Context(), raffleID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, getRaffleResponse{Raffle: toRaffleResponse(found)})
}

// toRaffleResponse はmodel.RaffleからAPIレスポンスに変換する。
func toRaffleResponse(r *model.Raffle) raffleResponse {
	entries := r.EntryIDs
	if entries == nil {
		entries = []string{}
	}
	return raffleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Entries:     entries,
		CreatedAt:   r.CreatedAt,
	}
}
