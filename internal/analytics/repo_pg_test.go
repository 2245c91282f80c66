package analytics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoFiltersExcludeEmptyCities(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT DISTINCT name FROM skills").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Go").AddRow("Postgres"))
	mock.ExpectQuery("SELECT DISTINCT city FROM candidates").
		WillReturnRows(sqlmock.NewRows([]string{"city"}).AddRow("Austin"))

	repo := &PGRepo{DB: db}
	values, err := repo.Filters(context.Background())
	if err != nil {
		t.Fatalf("Filters: %v", err)
	}
	if len(values.Skills) != 2 || len(values.Cities) != 1 {
		t.Fatalf("unexpected filter values: %+v", values)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSkillCountsPerLink(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("FROM candidate_skills").
		WillReturnRows(sqlmock.NewRows([]string{"name", "count"}).
			AddRow("Go", int64(3)).
			AddRow("Postgres", int64(1)))

	repo := &PGRepo{DB: db}
	counts, err := repo.SkillCounts(context.Background())
	if err != nil {
		t.Fatalf("SkillCounts: %v", err)
	}
	if counts["Go"] != 3 || counts["Postgres"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestPGRepoExperienceYearsSkipsNull(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	// NULL rows are filtered in SQL; the scan only ever sees numbers.
	mock.ExpectQuery("SELECT total_experience_years FROM candidates").
		WillReturnRows(sqlmock.NewRows([]string{"total_experience_years"}).
			AddRow(2.0).
			AddRow(11.5))

	repo := &PGRepo{DB: db}
	years, err := repo.ExperienceYears(context.Background())
	if err != nil {
		t.Fatalf("ExperienceYears: %v", err)
	}
	if len(years) != 2 {
		t.Fatalf("expected 2 values, got %v", years)
	}

	dist := BucketExperience(years)
	if dist[BucketMid] != 1 || dist[BucketPrincipal] != 1 {
		t.Fatalf("unexpected distribution: %v", dist)
	}
}
