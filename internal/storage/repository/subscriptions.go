package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/lumi-library/internal/models"
)

// CreateSubscription вставляет запись о покупке и в той же транзакции
// перезаписывает денормализованные поля плана владельца. Возвращает ID записи.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO subscriptions (user_uid, plan, start_date, expiry_date,
			      is_active, amount, payment_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err = tx.QueryRowContext(ctx, query,
		sub.UserUID, sub.Plan, sub.StartDate, sub.ExpiryDate,
		sub.IsActive, sub.Amount, sub.PaymentID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE users
			  SET subscription_plan = $1, subscription_expiry = $2
			  WHERE uid = $3`,
		sub.Plan, sub.ExpiryDate, sub.UserUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// LatestSubscription возвращает последнюю по времени создания запись
// подписки пользователя или ErrNotFound, если записей нет.
func (s *Storage) LatestSubscription(ctx context.Context, userUID string) (*models.Subscription, error) {
	const op = "storage.LatestSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, plan, start_date, expiry_date, is_active, amount,
			      payment_id, created_at
			  FROM subscriptions
			  WHERE user_uid = $1
			  ORDER BY created_at DESC
			  LIMIT 1`
	var sub models.Subscription
	row := s.DB.QueryRowContext(ctx, query, userUID)
	if err := row.Scan(&sub.ID, &sub.UserUID, &sub.Plan, &sub.StartDate, &sub.ExpiryDate,
		&sub.IsActive, &sub.Amount, &sub.PaymentID, &sub.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// ListSubscriptions возвращает подписки с данными владельцев для
// административного списка, с фильтрами по владельцу, плану и статусу.
func (s *Storage) ListSubscriptions(ctx context.Context, filter models.SubscriptionFilter) ([]*models.SubscriptionWithUser, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.user_uid, s.plan, s.start_date, s.expiry_date, s.is_active,
			      s.amount, s.payment_id, s.created_at, u.name, u.email
			  FROM subscriptions s
			  JOIN users u ON u.uid = s.user_uid
			  WHERE ($1 = '' OR u.name ILIKE '%' || $1 || '%' OR u.email ILIKE '%' || $1 || '%')
			    AND ($2 = '' OR s.plan = $2)
			    AND ($3 = '' OR
			         ($3 = 'active' AND s.expiry_date >= now()) OR
			         ($3 = 'expired' AND s.expiry_date < now()))
			  ORDER BY s.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, filter.Search, filter.Plan, filter.Status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionWithUser
	for rows.Next() {
		var item models.SubscriptionWithUser
		if err = rows.Scan(&item.ID, &item.UserUID, &item.Plan, &item.StartDate,
			&item.ExpiryDate, &item.IsActive, &item.Amount, &item.PaymentID,
			&item.CreatedAt, &item.UserName, &item.UserEmail); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveSubscriptionWithUserReset удаляет запись подписки и сбрасывает
// денормализованный план владельца на none/null. Обе записи выполняются
// в одной транзакции: запись пользователя не может пережить удаление
// подкрепляющей её записи журнала.
func (s *Storage) RemoveSubscriptionWithUserReset(ctx context.Context, id int) error {
	const op = "storage.RemoveSubscriptionWithUserReset"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var userUID string
	err = tx.QueryRowContext(ctx,
		`DELETE FROM subscriptions WHERE id = $1 RETURNING user_uid`, id).Scan(&userUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE users
			  SET subscription_plan = 'none', subscription_expiry = NULL
			  WHERE uid = $1`, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindEntitlementsExpiringTomorrow находит пользователей, чья текущая
// подписка истекает завтра. Используется планировщиком напоминаний.
func (s *Storage) FindEntitlementsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringEntitlement, error) {
	const op = "storage.FindEntitlementsExpiringTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, name, subscription_plan, subscription_expiry
			  FROM users
			  WHERE subscription_expiry::DATE = CURRENT_DATE + 1`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpiringEntitlement
	for rows.Next() {
		var item models.ExpiringEntitlement
		if err = rows.Scan(&item.Email, &item.Name, &item.Plan, &item.Expiry); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
