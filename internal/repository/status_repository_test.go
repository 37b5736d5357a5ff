package repository_test

import (
	"context"
	"testing"

	"github.com/meeladheeraj/todolist-Apis/internal/model"
	"github.com/meeladheeraj/todolist-Apis/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStatusRepository_Create_AppendsToEnd(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	statusRepo := repository.NewStatusRepository(gormDB)

	projectID := uuid.New()
	statusID := uuid.New()
	status := &model.Status{
		ProjectID: projectID,
		Name:      "Review",
	}

	mock.ExpectBegin()
	// The project row is locked for the whole transaction
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by"}).
			AddRow(projectID.String(), "Project", uuid.New().String()))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\), 0\) as max FROM "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(statusID.String()))
	mock.ExpectCommit()

	// Act
	err := statusRepo.Create(context.Background(), status)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 4, status.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_Create_EmptyProjectStartsAtOne(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	statusRepo := repository.NewStatusRepository(gormDB)

	projectID := uuid.New()
	status := &model.Status{
		ProjectID: projectID,
		Name:      "To Do",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by"}).
			AddRow(projectID.String(), "Project", uuid.New().String()))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\), 0\) as max FROM "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	// Act
	err := statusRepo.Create(context.Background(), status)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 1, status.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_Create_DuplicateNameRejected(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	statusRepo := repository.NewStatusRepository(gormDB)

	projectID := uuid.New()
	status := &model.Status{
		ProjectID: projectID,
		Name:      "To Do",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by"}).
			AddRow(projectID.String(), "Project", uuid.New().String()))
	// A "To Do" already lives in this project
	mock.ExpectQuery(`SELECT count\(\*\) FROM "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	// Act
	err := statusRepo.Create(context.Background(), status)

	// Assert: no insert happened
	assert.ErrorIs(t, err, repository.ErrStatusExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_Update_RenameCollisionRejected(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	statusRepo := repository.NewStatusRepository(gormDB)

	status := &model.Status{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Name:      "Done",
		Position:  2,
	}

	mock.ExpectBegin()
	// Another status of the project already carries the new name
	mock.ExpectQuery(`SELECT count\(\*\) FROM "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	// Act
	err := statusRepo.Update(context.Background(), status)

	// Assert
	assert.ErrorIs(t, err, repository.ErrStatusExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_Update_RenameToFreeName(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	statusRepo := repository.NewStatusRepository(gormDB)

	status := &model.Status{
		ID:        uuid.New(),
		ProjectID: uuid.New(),
		Name:      "Review",
		Position:  2,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE "statuses" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := statusRepo.Update(context.Background(), status)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_Create_ProjectMissing(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	statusRepo := repository.NewStatusRepository(gormDB)

	status := &model.Status{ProjectID: uuid.New(), Name: "Review"}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	// Act
	err := statusRepo.Create(context.Background(), status)

	// Assert
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_Delete_RefusesLastStatus(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	statusRepo := repository.NewStatusRepository(gormDB)

	statusID := uuid.New()
	projectID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "statuses" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "name", "position"}).
			AddRow(statusID.String(), projectID.String(), "To Do", 1))
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by"}).
			AddRow(projectID.String(), "Project", uuid.New().String()))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	// Act
	err := statusRepo.Delete(context.Background(), statusID)

	// Assert
	assert.ErrorIs(t, err, repository.ErrLastStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_Delete_AllowedWhenOthersRemain(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	statusRepo := repository.NewStatusRepository(gormDB)

	statusID := uuid.New()
	projectID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "statuses" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "name", "position"}).
			AddRow(statusID.String(), projectID.String(), "Done", 3))
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by"}).
			AddRow(projectID.String(), "Project", uuid.New().String()))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(`DELETE FROM "statuses"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := statusRepo.Delete(context.Background(), statusID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_Reorder_AssignsSequentialPositions(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	statusRepo := repository.NewStatusRepository(gormDB)

	projectID := uuid.New()
	s1, s2, s3 := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by"}).
			AddRow(projectID.String(), "Project", uuid.New().String()))
	mock.ExpectQuery(`SELECT "id" FROM "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(s1.String()).
			AddRow(s2.String()).
			AddRow(s3.String()))
	// New positions land in the order given: s3 -> 1, s1 -> 2, s2 -> 3
	for i := 0; i < 3; i++ {
		mock.ExpectExec(`UPDATE "statuses" SET "position"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	// Act
	err := statusRepo.Reorder(context.Background(), projectID, []uuid.UUID{s3, s1, s2})

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusRepository_Reorder_RejectsIncompleteList(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	statusRepo := repository.NewStatusRepository(gormDB)

	projectID := uuid.New()
	s1, s2, s3 := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "projects" WHERE id = .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_by"}).
			AddRow(projectID.String(), "Project", uuid.New().String()))
	mock.ExpectQuery(`SELECT "id" FROM "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(s1.String()).
			AddRow(s2.String()).
			AddRow(s3.String()))
	mock.ExpectRollback()

	// Act: s3 is left out of the list
	err := statusRepo.Reorder(context.Background(), projectID, []uuid.UUID{s2, s1})

	// Assert: nothing was written
	assert.ErrorIs(t, err, repository.ErrIncompleteOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}
