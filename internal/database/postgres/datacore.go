package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
)

// ListProfiles returns every user profile in the directory.
func (c *Client) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	start := time.Now()
	operation := "listProfiles"

	rows, err := c.pool.Query(ctx,
		`SELECT id, name, email, phone, role_in_school, faculty, department, bio, rating, subjects, courses
		 FROM user_profiles ORDER BY id`)
	if err != nil {
		recordMetrics("datacore", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query user profiles: %w", err)
	}
	defer rows.Close()

	profiles := []*models.Profile{}
	for rows.Next() {
		p := &models.Profile{}
		err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Role,
			&p.Faculty, &p.Department, &p.Bio, &p.Rating, &p.Subjects, &p.Courses)
		if err != nil {
			recordMetrics("datacore", operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		recordMetrics("datacore", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}

	recordMetrics("datacore", operation, "success", metrics.MeasureDuration(start))
	return profiles, nil
}

// ListCredentials returns the full set of sign-on accounts.
func (c *Client) ListCredentials(ctx context.Context) ([]*models.Credential, error) {
	start := time.Now()
	operation := "listCredentials"

	rows, err := c.pool.Query(ctx,
		"SELECT id, username, password, email, role FROM sso_accounts ORDER BY username")
	if err != nil {
		recordMetrics("datacore", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query sso accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*models.Credential{}
	for rows.Next() {
		a := &models.Credential{}
		if err := rows.Scan(&a.ID, &a.Username, &a.Password, &a.Email, &a.Role); err != nil {
			recordMetrics("datacore", operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan sso account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		recordMetrics("datacore", operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("error iterating sso account rows: %w", err)
	}

	recordMetrics("datacore", operation, "success", metrics.MeasureDuration(start))
	return accounts, nil
}
