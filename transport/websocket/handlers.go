package websocket

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/view"
)

func (that *Server) handleNewGame(ctx context.Context, _ *Request) Payload {
	game, err := that.gameUseCase.NewGame(ctx)
	if err != nil {
		return that.failure("handleNewGame", nil, err)
	}

	return Payload{Game: game}
}

func (that *Server) handleGameState(ctx context.Context, req *Request) Payload {
	if req.GameID == "" {
		return errorPayload(nil, apperror.CodeBadRequest, "game_id is required")
	}

	game, err := that.gameUseCase.GetGame(ctx, req.GameID)
	if err != nil {
		return that.failure("handleGameState", nil, err)
	}

	return Payload{Game: game}
}

func (that *Server) handleMove(ctx context.Context, req *Request) Payload {
	if req.GameID == "" || req.Cell == nil {
		return errorPayload(nil, apperror.CodeBadRequest, "game_id and cell are required")
	}

	game, err := that.gameUseCase.MakeMove(ctx, req.GameID, *req.Cell)
	if err != nil {
		return that.failure("handleMove", game, err)
	}

	return Payload{Game: game}
}

func (that *Server) handleJump(ctx context.Context, req *Request) Payload {
	if req.GameID == "" || req.Step == nil {
		return errorPayload(nil, apperror.CodeBadRequest, "game_id and step are required")
	}

	game, err := that.gameUseCase.JumpTo(ctx, req.GameID, *req.Step)
	if err != nil {
		return that.failure("handleJump", game, err)
	}

	return Payload{Game: game}
}

func (that *Server) failure(method string, game *view.Game, err error) Payload {
	code := apperror.Code(err)
	if code == apperror.CodeInternal {
		that.logger.Error("error processing message", "method", method, "error", err)
		return errorPayload(game, code, "internal error")
	}

	return errorPayload(game, code, err.Error())
}

func errorPayload(game *view.Game, code, message string) Payload {
	return Payload{Game: game, Error: &Error{Code: code, Message: message}}
}
