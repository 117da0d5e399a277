// Package users manages operator accounts. There is no login flow; accounts
// exist so collections, maintenance tasks and routes can reference who did
// what. Passwords are still stored hashed, never plaintext.
package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"smart-waste/internal/models"
	"smart-waste/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// RepositoryInterface defines the contract for user persistence.
type RepositoryInterface interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	Create(ctx context.Context, username, email, passwordHash string, role *string) (*models.User, error)
	Update(ctx context.Context, id int, username, email, passwordHash, role *string) (*models.User, error)
	Delete(ctx context.Context, id int) error
}

// Repository implements RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new user repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, username, email, role, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("repository.ListUsers: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListUsers.Scan: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *Repository) FindByID(ctx context.Context, id int) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, email, role, created_at FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *Repository) Create(ctx context.Context, username, email, passwordHash string, role *string) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, COALESCE($4, 'operator'))
		RETURNING id, username, email, role, created_at`

	u, err := scanUser(r.db.QueryRow(ctx, query, username, email, passwordHash, role))
	if err != nil {
		return nil, fmt.Errorf("repository.CreateUser: %w", err)
	}
	return u, nil
}

func (r *Repository) Update(ctx context.Context, id int, username, email, passwordHash, role *string) (*models.User, error) {
	query := `
		UPDATE users
		SET username = COALESCE($2, username),
		    email = COALESCE($3, email),
		    password_hash = COALESCE($4, password_hash),
		    role = COALESCE($5, role)
		WHERE id = $1
		RETURNING id, username, email, role, created_at`

	u, err := scanUser(r.db.QueryRow(ctx, query, id, username, email, passwordHash, role))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("repository.UpdateUser: %w", err)
	}
	return u, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository.DeleteUser: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ------------------- HTTP Handler -------------------

// Handler handles HTTP requests for users.
type Handler struct {
	repo RepositoryInterface
}

// NewHandler creates a new user handler.
func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) List(c echo.Context) error {
	users, err := h.repo.List(c.Request().Context())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if users == nil {
		users = []models.User{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, users)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, user)
}

func (h *Handler) Create(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.HandleServiceError(c, fmt.Errorf("hash password: %w", err))
	}

	user, err := h.repo.Create(c.Request().Context(), req.Username, req.Email, string(hash), req.Role)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, user)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID")
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	var hash *string
	if req.Password != nil {
		b, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.HandleServiceError(c, fmt.Errorf("hash password: %w", err))
		}
		s := string(b)
		hash = &s
	}

	user, err := h.repo.Update(c.Request().Context(), id, req.Username, req.Email, hash, req.Role)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, user)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]string{"message": "User deleted"})
}
