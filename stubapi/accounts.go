package stubapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang-jwt/jwt/v5/request"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/auth"
)

type account struct {
	ID        string
	Name      string
	Email     string
	Role      string
	BcryptPwd []byte
}

type ctxKey string

const accountKey ctxKey = "account"

// seedAccounts provisions one account per role, all with the password
// "password". Dev use only.
func (s *Server) seedAccounts() {
	seed := []struct {
		name, email, role string
	}{
		{"Ava Admin", "admin@freshtrack.dev", auth.RoleAdmin},
		{"Mara Manager", "manager@freshtrack.dev", auth.RoleManager},
		{"Finn Fresher", "fresher@freshtrack.dev", auth.RoleFresher},
	}
	for _, u := range seed {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		s.accounts[u.email] = &account{
			ID:        uuid.NewString(),
			Name:      u.name,
			Email:     u.email,
			Role:      u.role,
			BcryptPwd: hash,
		}
	}
}

func (s *Server) mintToken(acc *account) (string, error) {
	claims := &auth.Claims{
		Name:  acc.Name,
		Email: acc.Email,
		Role:  acc.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtKey)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}

	s.mu.Lock()
	acc := s.accounts[req.Email]
	s.mu.Unlock()

	if acc == nil || bcrypt.CompareHashAndPassword(acc.BcryptPwd, []byte(req.Password)) != nil {
		writeJsonError(w, "email or password incorrect", http.StatusUnauthorized, "bad_credentials")
		return
	}

	token, err := s.mintToken(acc)
	if err != nil {
		handleJsonError(w, err)
		return
	}
	writeJsonSuccess(w, api.LoginResponse{Token: token, User: acc.user()})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeJsonError(w, "email and password are required", http.StatusBadRequest, "bad_request")
		return
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Email]; exists {
		s.mu.Unlock()
		writeJsonError(w, "account already exists", http.StatusConflict, "account_exists")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		s.mu.Unlock()
		handleJsonError(w, err)
		return
	}
	acc := &account{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      auth.RoleFresher,
		BcryptPwd: hash,
	}
	s.accounts[req.Email] = acc
	s.mu.Unlock()

	token, err := s.mintToken(acc)
	if err != nil {
		handleJsonError(w, err)
		return
	}
	writeJsonSuccess(w, api.LoginResponse{Token: token, User: acc.user()})
}

func (s *Server) whoami(w http.ResponseWriter, r *http.Request) {
	acc := accountFrom(r.Context())
	writeJsonSuccess(w, acc.user())
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, err := request.BearerExtractor{}.ExtractToken(r)
		if err != nil {
			writeJsonError(w, "missing bearer token", http.StatusUnauthorized, "unauthorized")
			return
		}
		claims := &auth.Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			return s.jwtKey, nil
		})
		if err != nil || !token.Valid {
			writeJsonError(w, "invalid token", http.StatusUnauthorized, "unauthorized")
			return
		}

		s.mu.Lock()
		acc := s.accounts[claims.Email]
		s.mu.Unlock()
		if acc == nil {
			writeJsonError(w, "unknown account", http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), accountKey, acc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accountFrom(ctx context.Context) *account {
	acc, _ := ctx.Value(accountKey).(*account)
	return acc
}

func (a *account) user() api.User {
	return api.User{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	if accountFrom(r.Context()).Role != auth.RoleAdmin {
		writeJsonError(w, "admin role required", http.StatusForbidden, "forbidden")
		return
	}
	s.mu.Lock()
	users := make([]api.User, 0, len(s.accounts))
	for _, acc := range s.accounts {
		users = append(users, acc.user())
	}
	s.mu.Unlock()
	writeJsonSuccess(w, users)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	if accountFrom(r.Context()).Role != auth.RoleAdmin {
		writeJsonError(w, "admin role required", http.StatusForbidden, "forbidden")
		return
	}
	var req api.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, "invalid request body", http.StatusBadRequest, "bad_request")
		return
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		writeJsonError(w, "email, password and role are required", http.StatusBadRequest, "bad_request")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		writeJsonError(w, "account already exists", http.StatusConflict, "account_exists")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		handleJsonError(w, err)
		return
	}
	acc := &account{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		BcryptPwd: hash,
	}
	s.accounts[req.Email] = acc
	writeJsonSuccess(w, acc.user())
}
