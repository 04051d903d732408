package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mystery-server/internal/mystery"
)

func (s *Server) RegisterRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /room/create", s.createRoomHandler)
	mux.HandleFunc("POST /room/join", s.joinRoomHandler)
	mux.HandleFunc("GET /room/{roomCode}", s.getStateHandler)

	mux.HandleFunc("POST /game/start", s.startGameHandler)
	mux.HandleFunc("POST /game/murderer-choice", s.murdererChoiceHandler)
	mux.HandleFunc("POST /game/forensic-clue/add", s.addClueHandler)
	mux.HandleFunc("POST /game/turn/finish", s.finishTurnHandler)
	mux.HandleFunc("POST /game/guess", s.guessHandler)
	mux.HandleFunc("POST /game/restart", s.restartHandler)
	mux.HandleFunc("POST /game/close", s.closeRoomHandler)

	// Wrap the mux with rate limiting and CORS middleware
	return s.corsMiddleware(s.rateLimitMiddleware(mux))
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace "*" with specific origins if needed
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-CSRF-Token")
		w.Header().Set("Access-Control-Allow-Credentials", "false")

		// Handle preflight OPTIONS requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorMessage{Error: "Invalid JSON payload"})
		return false
	}
	return true
}

// statusFor maps a failed transition to the HTTP status carried alongside
// the uniform success:false body. Not-found stays distinguishable from a
// logical failure; everything else is a plain 200 with success:false.
func statusFor(err error) int {
	if errors.Is(err, mystery.ErrRoomNotFound) {
		return http.StatusNotFound
	}
	return http.StatusOK
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	if err := s.store.Health(r.Context()); err != nil {
		log.Printf("Store health check failed: %v", err)
		resp["status"] = "degraded"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) createRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	roomCode, playerID, err := s.roomManager.CreateRoom(r.Context(), req.HostName)
	if err != nil {
		if errors.Is(err, mystery.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, ErrorMessage{Error: err.Error()})
			return
		}
		log.Printf("Failed to create room: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorMessage{Error: "Failed to create room"})
		return
	}

	roomsCreatedTotal.Inc()
	log.Printf("Room %s created by %s", roomCode, req.HostName)

	writeJSON(w, http.StatusOK, CreateRoomResponse{
		RoomCode: roomCode,
		PlayerID: playerID,
	})
}

func (s *Server) joinRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req JoinRoomRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	playerID, err := s.roomManager.JoinRoom(r.Context(), req.RoomCode, req.PlayerName)
	if err != nil {
		// Absent room or closed lobby both surface as success:false;
		// the joiner only needs to know the code didn't work.
		writeJSON(w, http.StatusOK, JoinRoomResponse{Success: false})
		return
	}

	writeJSON(w, http.StatusOK, JoinRoomResponse{
		PlayerID: playerID,
		Success:  true,
	})
}

func (s *Server) getStateHandler(w http.ResponseWriter, r *http.Request) {
	roomCode := r.PathValue("roomCode")

	state, err := s.roomManager.GetState(r.Context(), roomCode)
	if err != nil {
		if errors.Is(err, mystery.ErrRoomNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorMessage{Error: "Room not found"})
			return
		}
		log.Printf("Failed to load room %s: %v", roomCode, err)
		writeJSON(w, http.StatusInternalServerError, ErrorMessage{Error: "Failed to load room"})
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) startGameHandler(w http.ResponseWriter, r *http.Request) {
	var req StartGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.roomManager.StartGame(r.Context(), req.RoomCode); err != nil {
		writeJSON(w, statusFor(err), SuccessResponse{Success: false})
		return
	}

	log.Printf("Game started in room %s", NormalizeRoomCode(req.RoomCode))
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) murdererChoiceHandler(w http.ResponseWriter, r *http.Request) {
	var req MurdererChoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.roomManager.ChooseMurdererCards(r.Context(), req.RoomCode, req.PlayerID, req.MethodID, req.EvidenceID)
	if err != nil {
		writeJSON(w, statusFor(err), SuccessResponse{Success: false})
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) addClueHandler(w http.ResponseWriter, r *http.Request) {
	var req AddClueRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.roomManager.AddClue(r.Context(), req.RoomCode, req.PlayerID, req.Category, req.CardName)
	if err != nil {
		writeJSON(w, statusFor(err), SuccessResponse{Success: false})
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) finishTurnHandler(w http.ResponseWriter, r *http.Request) {
	var req FinishTurnRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.roomManager.FinishTurn(r.Context(), req.RoomCode, req.PlayerID); err != nil {
		writeJSON(w, statusFor(err), SuccessResponse{Success: false})
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) guessHandler(w http.ResponseWriter, r *http.Request) {
	var req GuessRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.roomManager.MakeGuess(r.Context(), req.RoomCode, req.PlayerID, req.SuspectID, req.MethodID, req.EvidenceID)
	if err != nil {
		writeJSON(w, statusFor(err), GuessResponse{Success: false})
		return
	}

	if result.GameOver {
		gamesFinishedTotal.WithLabelValues(string(result.Winner)).Inc()
		log.Printf("Game over in room %s, winner: %s", NormalizeRoomCode(req.RoomCode), result.Winner)
	}

	writeJSON(w, http.StatusOK, GuessResponse{
		Success:  true,
		Correct:  result.Correct,
		GameOver: result.GameOver,
		Winner:   string(result.Winner),
	})
}

func (s *Server) restartHandler(w http.ResponseWriter, r *http.Request) {
	var req HostActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.roomManager.RestartGame(r.Context(), req.RoomCode, req.HostID); err != nil {
		writeJSON(w, statusFor(err), SuccessResponse{Success: false})
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (s *Server) closeRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req HostActionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.roomManager.CloseRoom(r.Context(), req.RoomCode, req.HostID); err != nil {
		writeJSON(w, statusFor(err), SuccessResponse{Success: false})
		return
	}

	log.Printf("Room %s closed", NormalizeRoomCode(req.RoomCode))
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
