package oracle

import (
	"context"
	"database/sql"

	"farmstand/internal/domain/entity"
	"farmstand/internal/domain/storage"
)

func (s *Store) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	r, err := s.queryCursorOne(ctx, "BEGIN farm_user_get(:p_id, :p_cur); END;",
		sql.Named("p_id", id))
	if err != nil {
		return nil, err
	}
	return userFromRow(r)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	r, err := s.queryCursorOne(ctx, "BEGIN farm_user_get_by_username(:p_username, :p_cur); END;",
		sql.Named("p_username", username))
	if err != nil {
		return nil, err
	}
	return userFromRow(r)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	r, err := s.queryCursorOne(ctx, "BEGIN farm_user_get_by_email(:p_email, :p_cur); END;",
		sql.Named("p_email", email))
	if err != nil {
		return nil, err
	}
	return userFromRow(r)
}

func (s *Store) GetUserByVerificationToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, storage.ErrNotFound
	}
	r, err := s.queryRowOne(ctx,
		"SELECT * FROM farm_users WHERE verification_token = :1", token)
	if err != nil {
		return nil, err
	}
	return userFromRow(r)
}

func (s *Store) GetUserByResetToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, storage.ErrNotFound
	}
	r, err := s.queryRowOne(ctx,
		"SELECT * FROM farm_users WHERE reset_token = :1", token)
	if err != nil {
		return nil, err
	}
	return userFromRow(r)
}

func (s *Store) ListUsers(ctx context.Context) ([]*entity.User, error) {
	rows, err := s.queryCursor(ctx, "BEGIN farm_users_list(:p_cur); END;")
	if err != nil {
		return nil, err
	}
	return mapRows(rows, userFromRow)
}

func (s *Store) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	id, err := s.callCreate(ctx,
		`BEGIN farm_user_create(:p_username, :p_email, :p_password,
			:p_first_name, :p_last_name, :p_phone,
			:p_street, :p_city, :p_state, :p_zip,
			:p_is_vendor, :p_is_verified,
			:p_verify_token, :p_reset_token, :p_reset_expiry, :p_id); END;`,
		userBinds(user)...)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

func (s *Store) UpdateUser(ctx context.Context, id int64, update entity.UserUpdate) (*entity.User, error) {
	// Procedures update the full row, so merge the update into the current
	// state first.
	current, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	update.Apply(current)

	args := append([]interface{}{sql.Named("p_id", id)}, userBinds(current)...)
	err = s.callExec(ctx,
		`BEGIN farm_user_update(:p_id, :p_username, :p_email, :p_password,
			:p_first_name, :p_last_name, :p_phone,
			:p_street, :p_city, :p_state, :p_zip,
			:p_is_vendor, :p_is_verified,
			:p_verify_token, :p_reset_token, :p_reset_expiry); END;`,
		args...)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

func (s *Store) DeleteUser(ctx context.Context, id int64) (bool, error) {
	return s.callDelete(ctx, "BEGIN farm_user_delete(:p_id, :p_deleted); END;",
		sql.Named("p_id", id))
}

func userBinds(u *entity.User) []interface{} {
	return []interface{}{
		sql.Named("p_username", u.Username),
		sql.Named("p_email", u.Email),
		sql.Named("p_password", u.Password),
		sql.Named("p_first_name", u.FirstName),
		sql.Named("p_last_name", u.LastName),
		sql.Named("p_phone", u.PhoneNumber),
		sql.Named("p_street", u.Street),
		sql.Named("p_city", u.City),
		sql.Named("p_state", u.State),
		sql.Named("p_zip", u.ZipCode),
		sql.Named("p_is_vendor", boolBind(u.IsVendor)),
		sql.Named("p_is_verified", boolBind(u.IsVerified)),
		sql.Named("p_verify_token", u.VerificationToken),
		sql.Named("p_reset_token", u.ResetToken),
		sql.Named("p_reset_expiry", timeBind(u.ResetTokenExpiry)),
	}
}
