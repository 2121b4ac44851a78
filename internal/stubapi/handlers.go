package stubapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"pointcard/internal/logger"
	"pointcard/internal/models"
)

type Handlers struct {
	db   *Store
	auth *Auth
}

func NewHandlers(db *Store, auth *Auth) *Handlers {
	return &Handlers{db: db, auth: auth}
}

func writeJSON(response http.ResponseWriter, statusCode int, payload any) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(statusCode)

	if err := json.NewEncoder(response).Encode(payload); err != nil {
		logger.Log.Debug("error encoding response", zap.Error(err))
	}
}

func writeAPIError(response http.ResponseWriter, statusCode int, message string) {
	writeJSON(response, statusCode, models.APIError{
		Message: message,
		Errors:  map[string]any{},
	})
}

func (h *Handlers) PostApilogin(response http.ResponseWriter, request *http.Request) {
	var requestDTO models.LoginRequest
	if err := json.NewDecoder(request.Body).Decode(&requestDTO); err != nil {
		logger.Log.Debugln("cannot decode request JSON body", zap.Error(err))
		writeAPIError(response, http.StatusBadRequest, "malformed request body")
		return
	}

	validate := validator.New()
	if err := validate.Struct(requestDTO); err != nil {
		logger.Log.Debugln("incorrect request structure", zap.Error(err))
		writeAPIError(response, http.StatusBadRequest, "invalid login request")
		return
	}

	usr, ok := h.db.Authenticate(requestDTO.Email, requestDTO.Password)
	if !ok {
		writeAPIError(response, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tokenString, err := h.auth.BuildTokenString(usr.ID)
	if err != nil {
		logger.Log.Debugln("error while `h.auth.BuildTokenString()` calling: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	message := "login succeeded"
	writeJSON(response, http.StatusOK, models.AuthResponse{
		Token:   &tokenString,
		Message: &message,
		User:    usr,
	})
}

func (h *Handlers) PostApiregister(response http.ResponseWriter, request *http.Request) {
	var requestDTO models.RegisterRequest
	if err := json.NewDecoder(request.Body).Decode(&requestDTO); err != nil {
		logger.Log.Debugln("cannot decode request JSON body", zap.Error(err))
		writeAPIError(response, http.StatusBadRequest, "malformed request body")
		return
	}

	validate := validator.New()
	if err := validate.Struct(requestDTO); err != nil {
		logger.Log.Debugln("incorrect request structure", zap.Error(err))
		writeAPIError(response, http.StatusBadRequest, "invalid register request")
		return
	}

	usr, err := h.db.CreateUser(requestDTO.Name, requestDTO.Email, requestDTO.Password)
	if errors.Is(err, models.ErrUserAlreadyExists) {
		logger.Log.Debugf("registering user `%s` already exists", requestDTO.Email)
		writeAPIError(response, http.StatusConflict, "user already exists")
		return
	}
	if err != nil {
		logger.Log.Debugln("error while `h.db.CreateUser()` calling: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	message := "registration succeeded"
	writeJSON(response, http.StatusOK, models.AuthResponse{
		Message: &message,
		User:    usr,
	})
}

func (h *Handlers) GetApiuser(response http.ResponseWriter, request *http.Request) {
	userID, ok := request.Context().Value(UserIDKey).(int)
	if !ok || userID == 0 {
		writeAPIError(response, http.StatusUnauthorized, "unauthenticated")
		return
	}

	usr, exists := h.db.GetUserByID(userID)
	if !exists {
		writeAPIError(response, http.StatusUnauthorized, "unauthenticated")
		return
	}

	writeJSON(response, http.StatusOK, usr)
}

func (h *Handlers) PostApipointsadd(response http.ResponseWriter, request *http.Request) {
	h.handlePoints(response, request, models.DirectionAdd)
}

func (h *Handlers) PostApipointsuse(response http.ResponseWriter, request *http.Request) {
	h.handlePoints(response, request, models.DirectionUse)
}

func (h *Handlers) handlePoints(
	response http.ResponseWriter,
	request *http.Request,
	direction models.Direction,
) {
	userID, ok := request.Context().Value(UserIDKey).(int)
	if !ok || userID == 0 {
		writeAPIError(response, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var requestDTO models.PointsTransactionRequest
	if err := json.NewDecoder(request.Body).Decode(&requestDTO); err != nil {
		logger.Log.Debugln("cannot decode request JSON body", zap.Error(err))
		writeAPIError(response, http.StatusBadRequest, "malformed request body")
		return
	}

	validate := validator.New()
	if err := validate.Struct(requestDTO); err != nil {
		logger.Log.Debugln("incorrect request structure", zap.Error(err))
		writeAPIError(response, http.StatusUnprocessableEntity, "invalid points transaction")
		return
	}

	var balance int
	var err error
	if direction == models.DirectionAdd {
		balance, err = h.db.AddPoints(requestDTO.PointID, requestDTO.Point, requestDTO.Shop)
	} else {
		balance, err = h.db.UsePoints(requestDTO.PointID, requestDTO.Point, requestDTO.Shop)
	}

	if errors.Is(err, ErrUnknownPointID) {
		writeAPIError(response, http.StatusUnprocessableEntity, "unknown point id")
		return
	}
	if errors.Is(err, ErrInsufficientPoints) {
		writeAPIError(response, http.StatusUnprocessableEntity, "insufficient points")
		return
	}
	if err != nil {
		logger.Log.Debugln("error while the points transaction applying: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(response, http.StatusOK, map[string]any{
		"message": "ok",
		"balance": balance,
	})
}
