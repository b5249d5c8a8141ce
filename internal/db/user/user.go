package user

import (
	"context"
	"errors"
	"time"

	c "accountms/internal/core/domain/common"
	"accountms/internal/core/domain/user"
	"accountms/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const USERNAME_CONSTRAINT_NAME = "user_username_idx"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, username, email, password_hash, first_name, last_name, role,
	created_at, last_login_at, total_logins, is_active,
	reset_token, reset_token_expiry, reset_token_is_used`

type PgxUserRepository struct {
	db db.Queryable
}

func NewPgxRepository(db db.Queryable) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (username, email, password_hash, first_name, last_name, role, created_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+userColumns,
		input.Username,
		string(input.Email),
		string(input.PasswordHash),
		encodeOptionalString(input.FirstName),
		encodeOptionalString(input.LastName),
		string(input.Role),
		input.CreatedAt,
		input.IsActive,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE {
		switch pgErr.ConstraintName {
		case USERNAME_CONSTRAINT_NAME:
			return u, user.ErrUsernameAlreadyExists
		case EMAIL_CONSTRAINT_NAME:
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	return r.getOne(row)
}

func (r *PgxUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE username = $1`, username)
	return r.getOne(row)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	return r.getOne(row)
}

func (r *PgxUserRepository) GetByResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE reset_token = $1`, string(token))
	return r.getOne(row)
}

func (r *PgxUserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM "user" ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			first_name = CASE WHEN $2 THEN $3 ELSE first_name END,
			last_name = CASE WHEN $4 THEN $5 ELSE last_name END,
			is_active = CASE WHEN $6 THEN $7 ELSE is_active END
		WHERE id = $1
		RETURNING `+userColumns,
		int64(input.UserID),
		input.DoFirstNameUpdate,
		encodeOptionalString(input.FirstName),
		input.DoLastNameUpdate,
		encodeOptionalString(input.LastName),
		input.DoIsActiveUpdate,
		input.IsActive,
	)
	return r.getOne(row)
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_hash = $2 WHERE id = $1`,
		int64(id),
		string(password),
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) RecordLogIn(ctx context.Context, id user.ID, at time.Time) error {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET last_login_at = $2, total_logins = total_logins + 1 WHERE id = $1`,
		int64(id),
		at,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetPasswordResetToken(
	ctx context.Context,
	input user.SetPasswordResetTokenInput,
) error {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET reset_token = $2, reset_token_expiry = $3, reset_token_is_used = FALSE
		WHERE id = $1`,
		int64(input.UserID),
		string(input.Token),
		input.ExpiresAt,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

// ConsumePasswordResetToken relies on the conditional WHERE clause for
// atomicity. Of two concurrent consumers the row lock serializes them and the
// second sees reset_token IS NULL, so exactly one update succeeds.
func (r *PgxUserRepository) ConsumePasswordResetToken(
	ctx context.Context,
	input user.ConsumePasswordResetTokenInput,
) error {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET
			password_hash = $2,
			reset_token = NULL,
			reset_token_expiry = NULL,
			reset_token_is_used = TRUE
		WHERE id = $1 AND reset_token IS NOT NULL AND reset_token_is_used = FALSE`,
		int64(input.UserID),
		string(input.NewPasswordHash),
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrResetTokenAlreadyUsed
	}
	return nil
}

func (r *PgxUserRepository) getOne(row pgx.Row) (u user.User, err error) {
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id               int64
		username         string
		email            string
		passwordHash     string
		firstName        pgtype.Text
		lastName         pgtype.Text
		role             string
		createdAt        time.Time
		lastLoginAt      pgtype.Timestamptz
		totalLogins      int64
		isActive         bool
		resetToken       pgtype.Text
		resetTokenExpiry pgtype.Timestamptz
		resetTokenIsUsed bool
	)
	err = row.Scan(
		&id,
		&username,
		&email,
		&passwordHash,
		&firstName,
		&lastName,
		&role,
		&createdAt,
		&lastLoginAt,
		&totalLogins,
		&isActive,
		&resetToken,
		&resetTokenExpiry,
		&resetTokenIsUsed,
	)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:               user.ID(id),
		Username:         username,
		Email:            c.Email(email),
		PasswordHash:     user.PasswordHash(passwordHash),
		FirstName:        decodeOptionalString(firstName),
		LastName:         decodeOptionalString(lastName),
		Role:             user.Role(role),
		CreatedAt:        createdAt,
		LastLoginAt:      decodeOptionalTime(lastLoginAt),
		TotalLogins:      totalLogins,
		IsActive:         isActive,
		ResetToken:       c.NewOptional(user.PasswordResetToken(resetToken.String), resetToken.Status == pgtype.Present),
		ResetTokenExpiry: decodeOptionalTime(resetTokenExpiry),
		ResetTokenIsUsed: resetTokenIsUsed,
	}, nil
}

func encodeOptionalString(s c.Optional[string]) pgtype.Text {
	if !s.IsPresent {
		return pgtype.Text{Status: pgtype.Null}
	}
	return pgtype.Text{String: s.Value, Status: pgtype.Present}
}

func decodeOptionalString(t pgtype.Text) c.Optional[string] {
	return c.NewOptional(t.String, t.Status == pgtype.Present)
}

func decodeOptionalTime(t pgtype.Timestamptz) c.Optional[time.Time] {
	return c.NewOptional(t.Time, t.Status == pgtype.Present)
}
