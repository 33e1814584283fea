package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/traveltrek/models"
)

// psql builds PostgreSQL statements with $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const userColumns = `id, name, email, phone, password_hash, password_set, role, google_id, fcm_token, created_at`

const (
	createUser = `INSERT INTO users (name, email, phone, password_hash, password_set, role, google_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns + `;`

	getUserByID = `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1;`

	getUserByEmail = `SELECT ` + userColumns + `
		FROM users
		WHERE email = $1;`

	listUsersWithMemberships = `SELECT u.id, u.name, u.email, u.phone, u.password_set, u.role, u.created_at,
			m.id, m.plan_type, m.status, m.membership_id, m.end_date
		FROM users u
		LEFT JOIN memberships m ON m.user_id = u.id
		ORDER BY u.created_at DESC, u.id DESC;`
)

// membershipColumns lists membership columns in scan order. The custom
// destination set is aggregated into a comma-separated list.
const membershipColumns = `m.id, m.user_id, m.plan_type, m.membership_id, m.status, m.payment_status,
		m.total_days, m.used_days, m.custom_days_added, m.start_date, m.end_date, m.activated_at,
		m.state, m.payment_amount, m.created_at, m.updated_at,
		COALESCE((SELECT string_agg(mcd.destination_id::text, ',' ORDER BY mcd.destination_id)
			FROM membership_custom_destinations mcd
			WHERE mcd.membership_id = m.id), '')`

const (
	createMembership = `INSERT INTO memberships (user_id, plan_type, status, payment_status, total_days, state, payment_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at;`

	getMembershipByID = `SELECT ` + membershipColumns + `
		FROM memberships m
		WHERE m.id = $1;`

	getMembershipByIDForUpdate = `SELECT ` + membershipColumns + `
		FROM memberships m
		WHERE m.id = $1
		FOR UPDATE OF m;`

	getMembershipByUserID = `SELECT ` + membershipColumns + `
		FROM memberships m
		WHERE m.user_id = $1;`

	getMembershipByUserIDForUpdate = `SELECT ` + membershipColumns + `
		FROM memberships m
		WHERE m.user_id = $1
		FOR UPDATE OF m;`

	getMembershipByMembershipID = `SELECT ` + membershipColumns + `
		FROM memberships m
		WHERE m.membership_id = $1;`

	updateMembership = `UPDATE memberships SET
			plan_type = $2,
			membership_id = $3,
			status = $4,
			payment_status = $5,
			total_days = $6,
			used_days = $7,
			custom_days_added = $8,
			start_date = $9,
			end_date = $10,
			activated_at = $11,
			state = $12,
			payment_amount = $13,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at;`

	markMembershipExpired = `UPDATE memberships
		SET status = 'EXPIRED', updated_at = NOW()
		WHERE id = $1 AND status = 'ACTIVE';`

	deleteMembership = `DELETE FROM memberships WHERE id = $1;`

	deleteMembershipDestinations = `DELETE FROM membership_custom_destinations WHERE membership_id = $1;`

	nextMembershipCounter = `INSERT INTO membership_counters (year, counter)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET counter = membership_counters.counter + 1
		RETURNING counter;`
)

const planColumns = `id, plan_type, name, description, days, price, is_active`

const (
	listActivePlans = `SELECT ` + planColumns + `
		FROM plan_configs
		WHERE is_active
		ORDER BY plan_type ASC;`

	listAllPlans = `SELECT ` + planColumns + `
		FROM plan_configs
		ORDER BY plan_type ASC;`

	getPlanByID = `SELECT ` + planColumns + `
		FROM plan_configs
		WHERE id = $1;`

	getActivePlanByType = `SELECT ` + planColumns + `
		FROM plan_configs
		WHERE plan_type = $1 AND is_active;`

	seedPlan = `INSERT INTO plan_configs (plan_type, name, description, days, price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (plan_type) DO NOTHING;`

	deletePlanDestinations = `DELETE FROM plan_destinations WHERE plan_id = $1;`

	listPlanDestinations = `SELECT pd.plan_id, ` + destinationColumnsPrefixed + `
		FROM plan_destinations pd
		JOIN destinations d ON d.id = pd.destination_id
		ORDER BY d.name ASC;`
)

const destinationColumns = `id, name, description, duration_days, best_months, difficulty, status, image_url`

const destinationColumnsPrefixed = `d.id, d.name, d.description, d.duration_days, d.best_months, d.difficulty, d.status, d.image_url`

const (
	listDestinations = `SELECT ` + destinationColumns + `
		FROM destinations
		ORDER BY name ASC;`

	listAvailableDestinations = `SELECT ` + destinationColumns + `
		FROM destinations
		WHERE status = 'available'
		ORDER BY name ASC;`

	getDestinationByID = `SELECT ` + destinationColumns + `
		FROM destinations
		WHERE id = $1;`

	createDestination = `INSERT INTO destinations (name, description, duration_days, best_months, difficulty, status, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;`

	deleteDestination = `DELETE FROM destinations WHERE id = $1;`
)

const (
	createPayment = `INSERT INTO payments (user_id, membership_id, amount, method, gateway_reference, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at;`

	createRejection = `INSERT INTO membership_rejections (membership_id, user_id, plan_type, reason, rejected_at)
		VALUES ($1, $2, $3, $4, $5);`

	saveChatMessage = `INSERT INTO chat_messages (user_id, role, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;`

	chatHistory = `SELECT id, user_id, role, content, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2;`

	recentChatMessages = `SELECT id, user_id, role, content, created_at
		FROM (
			SELECT id, user_id, role, content, created_at
			FROM chat_messages
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC, id ASC;`

	clearChatHistory = `DELETE FROM chat_messages WHERE user_id = $1;`

	listBrochures = `SELECT id, title, url, created_at
		FROM brochures
		ORDER BY created_at DESC, id DESC;`

	createBrochure = `INSERT INTO brochures (title, url)
		VALUES ($1, $2)
		RETURNING id, created_at;`

	deleteBrochure = `DELETE FROM brochures WHERE id = $1;`

	dashboardStats = `SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM memberships),
			(SELECT COUNT(*) FROM memberships WHERE status = 'ACTIVE' AND (end_date IS NULL OR end_date >= NOW())),
			(SELECT COUNT(*) FROM memberships WHERE status = 'PENDING'),
			(SELECT COUNT(*) FROM destinations);`
)

// buildUpdateUserQuery builds a partial UPDATE of the users row.
// Only non-nil fields of update are included.
func buildUpdateUserQuery(_ context.Context, id int64, update models.UserUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	qb := psql.Update("users").Where(sq.Eq{"id": id}).Suffix("RETURNING " + userColumns)

	if update.Name != nil {
		qb = qb.Set("name", *update.Name)
	}
	if update.Phone != nil {
		qb = qb.Set("phone", *update.Phone)
	}
	if update.PasswordHash != nil {
		qb = qb.Set("password_hash", *update.PasswordHash)
	}
	if update.PasswordSet != nil {
		qb = qb.Set("password_set", *update.PasswordSet)
	}
	if update.GoogleID != nil {
		qb = qb.Set("google_id", *update.GoogleID)
	}
	if update.FCMToken != nil {
		qb = qb.Set("fcm_token", *update.FCMToken)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildListMembershipsQuery selects memberships joined with their owners,
// newest first, optionally filtered by the status derived at asOf. An
// ACTIVE row whose end date is before asOf is reported as EXPIRED.
func buildListMembershipsQuery(_ context.Context, status *models.MembershipStatus, asOf time.Time) (string, []any, error) {
	qb := psql.Select(membershipColumns, "u.id", "u.name", "u.email", "u.phone").
		From("memberships m").
		Join("users u ON u.id = m.user_id").
		OrderBy("m.created_at DESC", "m.id DESC")

	if status != nil {
		qb = qb.Where(derivedStatusFilter(*status, asOf))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func derivedStatusFilter(status models.MembershipStatus, asOf time.Time) sq.Sqlizer {
	active := sq.Eq{"m.status": string(models.StatusActive)}

	switch status {
	case models.StatusActive:
		return sq.And{active, sq.Or{sq.Eq{"m.end_date": nil}, sq.GtOrEq{"m.end_date": asOf}}}
	case models.StatusExpired:
		return sq.Or{sq.Eq{"m.status": string(models.StatusExpired)}, sq.And{active, sq.Lt{"m.end_date": asOf}}}
	default:
		return sq.Eq{"m.status": string(status)}
	}
}

// buildUpdatePlanQuery builds a partial UPDATE of a plan row.
func buildUpdatePlanQuery(_ context.Context, id int64, update models.PlanConfigUpdate) (string, []any, error) {
	if !update.HasColumns() {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	qb := psql.Update("plan_configs").Where(sq.Eq{"id": id})

	if update.Name != nil {
		qb = qb.Set("name", *update.Name)
	}
	if update.Description != nil {
		qb = qb.Set("description", *update.Description)
	}
	if update.Days != nil {
		qb = qb.Set("days", *update.Days)
	}
	if update.Price != nil {
		qb = qb.Set("price", *update.Price)
	}
	if update.IsActive != nil {
		qb = qb.Set("is_active", *update.IsActive)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateDestinationQuery builds a partial UPDATE of a destination row.
func buildUpdateDestinationQuery(_ context.Context, id int64, update models.DestinationUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	qb := psql.Update("destinations").Where(sq.Eq{"id": id}).Suffix("RETURNING " + destinationColumns)

	if update.Name != nil {
		qb = qb.Set("name", *update.Name)
	}
	if update.Description != nil {
		qb = qb.Set("description", *update.Description)
	}
	if update.DurationDays != nil {
		qb = qb.Set("duration_days", *update.DurationDays)
	}
	if update.BestMonths != nil {
		months, err := encodeMonths(*update.BestMonths)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		qb = qb.Set("best_months", months)
	}
	if update.Difficulty != nil {
		qb = qb.Set("difficulty", *update.Difficulty)
	}
	if update.Status != nil {
		qb = qb.Set("status", *update.Status)
	}
	if update.ImageURL != nil {
		qb = qb.Set("image_url", *update.ImageURL)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSelectDestinationsByIDsQuery selects destinations whose id is in ids.
func buildSelectDestinationsByIDsQuery(_ context.Context, ids []int64) (string, []any, error) {
	query, args, err := psql.Select(destinationColumns).
		From("destinations").
		Where(sq.Eq{"id": ids}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildInsertLinksQuery builds a multi-row INSERT into a two-column join
// table, linking ownerID to every id in ids.
func buildInsertLinksQuery(_ context.Context, table, ownerColumn string, ownerID int64, ids []int64) (string, []any, error) {
	if len(ids) == 0 {
		return "", nil, fmt.Errorf("%w: no ids to link", ErrBuildingSQLQuery)
	}

	qb := psql.Insert(table).Columns(ownerColumn, "destination_id")
	for _, id := range ids {
		qb = qb.Values(ownerID, id)
	}

	query, args, err := qb.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// encodeMonths serializes best months into the JSON text stored in the
// best_months column.
func encodeMonths(months []string) (string, error) {
	if months == nil {
		months = []string{}
	}
	b, err := json.Marshal(months)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeMonths(raw string) ([]string, error) {
	months := make([]string, 0, 12)
	if raw == "" {
		return months, nil
	}
	if err := json.Unmarshal([]byte(raw), &months); err != nil {
		return nil, err
	}
	return months, nil
}

// parseIDList parses the comma-separated id list produced by string_agg.
func parseIDList(raw string) ([]int64, error) {
	ids := make([]int64, 0)
	if raw == "" {
		return ids, nil
	}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
