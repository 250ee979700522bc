package app

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/sdk/models"
	"github.com/fitcoach/coaching-service/internal/sdk/sqldb"
	"github.com/fitcoach/coaching-service/internal/services/sentry"
)

func (a *App) HandleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}

	normalizedPhone, errCode, validationErrors := validateRegisterInput(req)
	if errCode != "" {
		writeError(c, errCode, validationErrors)
		return
	}

	passwordHash, err := a.hash.HashPassword(req.Password)
	if err != nil {
		a.toSentry(c, "register", "bcrypt", sentry.LevelError, err)
		writeError(c, ErrHashPassword, nil)
		return
	}

	account, err := a.db.CreateAccount(c.Request.Context(), models.NewAccount{
		Phone:        normalizedPhone,
		PasswordHash: passwordHash,
		IsTrainer:    req.IsTrainer,
	})
	if err != nil {
		// A concurrent registration with the same phone loses on the unique
		// constraint and lands here as well.
		if errors.Is(err, sqldb.ErrDBDuplicatedEntry) {
			writeError(c, ErrUserExists, nil)
			return
		}
		a.toSentry(c, "register", "db", sentry.LevelError, err)
		writeError(c, ErrCreateAccount, nil)
		return
	}

	accessToken, refreshToken, err := a.jwt.GenerateTokens(c.Request.Context(), account.ID, account.IsTrainer)
	if err != nil {
		a.toSentry(c, "register", "jwt", sentry.LevelError, err)
		writeError(c, ErrGenerateTokens, nil)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	})
}

func (a *App) HandleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrUnmarshal, nil)
		return
	}

	normalizedPhone, errCode, validationErrors := validateLoginInput(req)
	if errCode != "" {
		writeError(c, errCode, validationErrors)
		return
	}

	account, err := a.db.GetAccountByPhone(c.Request.Context(), normalizedPhone)
	if err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			// Same error as a wrong password, avoids account enumeration.
			writeError(c, ErrInvalidCredentials, nil)
			return
		}
		a.toSentry(c, "login", "db", sentry.LevelError, err)
		writeError(c, ErrProcessLogin, nil)
		return
	}

	if !a.hash.CheckPasswordHash(req.Password, account.PasswordHash) {
		writeError(c, ErrInvalidCredentials, nil)
		return
	}

	if !account.IsActive {
		writeError(c, ErrAccountInactive, nil)
		return
	}

	accessToken, refreshToken, err := a.jwt.GenerateTokens(c.Request.Context(), account.ID, account.IsTrainer)
	if err != nil {
		a.toSentry(c, "login", "jwt", sentry.LevelError, err)
		writeError(c, ErrGenerateTokens, nil)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      account,
	})
}
