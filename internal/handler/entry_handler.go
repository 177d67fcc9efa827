package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hitoshi/raffle/internal/middleware"
	"github.com/hitoshi/raffle/internal/model"
)

// EntryServiceInterface は参加ハンドラーが必要とするサービスインターフェース。
type EntryServiceInterface interface {
	Admit(ctx context.Context, raffleID string, identity *model.Identity) (*model.Entry, error)
}

// EntryHandler は抽選参加のHTTPハンドラー。
type EntryHandler struct {
	service EntryServiceInterface
}

// NewEntryHandler はEntryHandlerを生成する。
func NewEntryHandler(service EntryServiceInterface) *EntryHandler {
	return &EntryHandler{service: service}
}

// enterRaffleRequest は抽選参加リクエストのボディ。
// userIdは省略可能で、指定した場合はセッションのユーザーと一致する必要がある。
type enterRaffleRequest struct {
	RaffleID string `json:"raffleId"`
	UserID   string `json:"userId"`
}

type entryResponse struct {
	ID           string    `json:"id"`
	RaffleID     string    `json:"raffleId"`
	UserID       string    `json:"userId"`
	TicketNumber int       `json:"ticketNumber"`
	CreatedAt    time.Time `json:"createdAt"`
}

type enterRaffleResponse struct {
	Message string        `json:"message"`
	Entry   entryResponse `json:"entry"`
}

// EnterRaffle はログイン中のユーザーを抽選に参加させる。
// POST /api/entries
func (h *EntryHandler) EnterRaffle(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	var req enterRaffleRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.RaffleID == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("raffleIdは必須です"))
		return
	}
	// 参加者は常にセッションの主体。他ユーザーとしての参加は拒否する
	if req.UserID != "" && req.UserID != identity.ID {
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewForbiddenError())
		return
	}

	entry, err := h.service.Admit(r.Context(), req.RaffleID, identity)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, enterRaffleResponse{
		Message: "抽選に参加しました。",
		Entry: entryResponse{
			ID:           entry.ID,
			RaffleID:     entry.RaffleID,
			UserID:       entry.UserID,
			TicketNumber: entry.TicketNumber,
			CreatedAt:    entry.CreatedAt,
		},
	})
}
