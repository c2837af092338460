package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)
	MakeMove(w http.ResponseWriter, r *http.Request)
	JumpTo(w http.ResponseWriter, r *http.Request)
}

// maxBodyBytes matches the websocket read limit.
const maxBodyBytes = 4096

type MoveRequest struct {
	Cell *int `json:"cell"`
}

type JumpRequest struct {
	Step *int `json:"step"`
}

// Response carries the game view, and on rejected input the reason for it.
type Response struct {
	Game  *view.Game `json:"game,omitempty"`
	Error *Error     `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type handlers struct {
	logger      *slog.Logger
	gameUseCase usecase.GameUseCase
}

func NewHandlers(logger *slog.Logger, gameUseCase usecase.GameUseCase) Handlers {
	return &handlers{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.NewGame(r.Context())
	if err != nil {
		that.writeError(w, "CreateGame", nil, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, Response{Game: game})
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "GetGame", nil, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Response{Game: game})
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, "DeleteGame", nil, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, Response{Error: &Error{Code: apperror.CodeBadRequest, Message: "cell is required"}})
		return
	}

	game, err := that.gameUseCase.MakeMove(r.Context(), r.PathValue("id"), *req.Cell)
	if err != nil {
		that.writeError(w, "MakeMove", game, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Response{Game: game})
}

func (that *handlers) JumpTo(w http.ResponseWriter, r *http.Request) {
	var req JumpRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Step == nil {
		that.writeJSON(w, http.StatusBadRequest, Response{Error: &Error{Code: apperror.CodeBadRequest, Message: "step is required"}})
		return
	}

	game, err := that.gameUseCase.JumpTo(r.Context(), r.PathValue("id"), *req.Step)
	if err != nil {
		that.writeError(w, "JumpTo", game, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Response{Game: game})
}

// StatusCode maps an error to the HTTP status reported with it.
func StatusCode(err error) (string, int) {
	code := apperror.Code(err)

	switch code {
	case apperror.CodeNotFound:
		return code, http.StatusNotFound
	case apperror.CodeInvalidCell, apperror.CodeStepOutOfRange:
		return code, http.StatusBadRequest
	case apperror.CodeCellOccupied, apperror.CodeGameFinished:
		return code, http.StatusConflict
	default:
		return code, http.StatusInternalServerError
	}
}

func (that *handlers) writeError(w http.ResponseWriter, method string, game *view.Game, err error) {
	code, status := StatusCode(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		message = http.StatusText(status)
	}

	that.writeJSON(w, status, Response{Game: game, Error: &Error{Code: code, Message: message}})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
