package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kadgis/fieldstore/internal/database"
	"github.com/kadgis/fieldstore/internal/models"
)

// FacilityTable is the table holding facility (mosque) records.
const FacilityTable = "facility_records"

// FacilitySchema is the declared layout of the facility table. The columns
// after uploadedBy were added later; EnsureSchema appends them to older files.
var FacilitySchema = database.TableSchema{
	Name: FacilityTable,
	Columns: []database.Column{
		{Name: "id", Type: database.TypeText, PrimaryKey: true, NotNull: true},
		{Name: "name", Type: database.TypeText},
		{Name: "streetAddress", Type: database.TypeText},
		{Name: "cityTown", Type: database.TypeText},
		{Name: "lga", Type: database.TypeText},
		{Name: "state", Type: database.TypeText},
		{Name: "latitude", Type: database.TypeReal},
		{Name: "longitude", Type: database.TypeReal},
		{Name: "category", Type: database.TypeText},
		{Name: "ablutionArea", Type: database.TypeInteger, Default: "0"},
		{Name: "toiletFacilities", Type: database.TypeInteger, Default: "0"},
		{Name: "parkingSpace", Type: database.TypeInteger, Default: "0"},
		{Name: "womensPrayerArea", Type: database.TypeInteger, Default: "0"},
		{Name: "securitySystem", Type: database.TypeInteger, Default: "0"},
		{Name: "published", Type: database.TypeInteger, Default: "0"},
		{Name: "pictures", Type: database.TypeText, Default: "'[]'"},
		{Name: "personnel", Type: database.TypeText, Default: "'[]'"},
		{Name: "madrasas", Type: database.TypeText, Default: "'[]'"},
		{Name: "uploadedBy", Type: database.TypeText},
		{Name: "capacity", Type: database.TypeInteger},
		{Name: "yearEstablished", Type: database.TypeInteger},
		{Name: "numberOfFloors", Type: database.TypeInteger},
		{Name: "powerSupply", Type: database.TypeText},
		{Name: "waterSupply", Type: database.TypeText},
		{Name: "createdAt", Type: database.TypeText, Default: "CURRENT_TIMESTAMP"},
		{Name: "updatedAt", Type: database.TypeText, Default: "CURRENT_TIMESTAMP"},
	},
	Indexes: []database.Index{
		{Name: "idx_facility_records_category", Columns: []string{"category"}},
		{Name: "idx_facility_records_published", Columns: []string{"published"}},
	},
}

const facilityInsertColumns = `id, name, streetAddress, cityTown, lga, state, latitude, longitude,
	category, ablutionArea, toiletFacilities, parkingSpace, womensPrayerArea, securitySystem,
	published, pictures, personnel, madrasas, uploadedBy, capacity, yearEstablished,
	numberOfFloors, powerSupply, waterSupply`

const facilityInsertCount = 24

const facilitySelectColumns = `id, COALESCE(name, ''), COALESCE(streetAddress, ''), COALESCE(cityTown, ''),
	COALESCE(lga, ''), COALESCE(state, ''), latitude, longitude, COALESCE(category, ''),
	ablutionArea, toiletFacilities, parkingSpace, womensPrayerArea, securitySystem, published,
	pictures, personnel, madrasas, COALESCE(uploadedBy, ''), capacity, yearEstablished,
	numberOfFloors, COALESCE(powerSupply, ''), COALESCE(waterSupply, ''),
	COALESCE(createdAt, ''), COALESCE(updatedAt, '')`

// FacilityRepository defines data access for facility records.
type FacilityRepository interface {
	// Add inserts the draft under a newly generated id and returns the id.
	// Personnel entries without an id are given one.
	Add(ctx context.Context, draft models.FacilityDraft) (string, error)

	// GetByID returns nil, nil when no record has the id.
	GetByID(ctx context.Context, id string) (*models.FacilityRecord, error)

	List(ctx context.Context) ([]models.FacilityRecord, error)

	// ListFiltered returns the records matching every non-zero filter field.
	ListFiltered(ctx context.Context, filter models.FacilityFilter) ([]models.FacilityRecord, error)

	// Update writes only the patched fields and refreshes updatedAt. It never
	// touches published. Patched personnel entries without an id are given
	// one. Returns ErrNotFound when the id matches no row.
	Update(ctx context.Context, id string, patch models.FacilityPatch) error

	// SetPublished is the sync-state transition. Returns ErrNotFound when the
	// id matches no row.
	SetPublished(ctx context.Context, id string, published bool) error

	DeleteByID(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)

	// Search matches keyword as a literal substring of name or streetAddress,
	// ASCII case-insensitively. An empty keyword matches every record.
	Search(ctx context.Context, keyword string) ([]models.FacilityRecord, error)

	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)

	// CountByCategory tallies records per category value, one entry per
	// requested value in request order.
	CountByCategory(ctx context.Context, categories []string) ([]models.CategoryCount, error)

	// CountPublished splits the table into published and unpublished rows.
	CountPublished(ctx context.Context) (published, unpublished int64, err error)
}

type facilityRepository struct {
	db *database.Database
}

// NewFacilityRepository creates a new instance of FacilityRepository.
func NewFacilityRepository(db *database.Database) FacilityRepository {
	return &facilityRepository{
		db: db,
	}
}

func (r *facilityRepository) Add(ctx context.Context, draft models.FacilityDraft) (string, error) {
	id, err := newRecordID()
	if err != nil {
		return "", err
	}

	personnel := withPersonnelIDs(draft.Personnel)

	query := insertStatement(FacilityTable, facilityInsertColumns, facilityInsertCount)

	_, err = r.db.DB.ExecContext(ctx, query,
		id,
		draft.Name,
		draft.StreetAddress,
		draft.CityTown,
		draft.LGA,
		draft.State,
		nullFloat(draft.Latitude),
		nullFloat(draft.Longitude),
		string(draft.Category),
		models.Flag(draft.AblutionArea),
		models.Flag(draft.ToiletFacilities),
		models.Flag(draft.ParkingSpace),
		models.Flag(draft.WomensPrayerArea),
		models.Flag(draft.SecuritySystem),
		models.Flag(draft.Published),
		draft.Pictures,
		personnel,
		draft.Madrasas,
		draft.UploadedBy,
		nullInt(draft.Capacity),
		nullInt(draft.YearEstablished),
		nullInt(draft.NumberOfFloors),
		string(draft.PowerSupply),
		string(draft.WaterSupply),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert facility record: %w", err)
	}

	return id, nil
}

func (r *facilityRepository) GetByID(ctx context.Context, id string) (*models.FacilityRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", facilitySelectColumns, FacilityTable)

	record, err := scanFacility(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query facility record %s: %w", id, err)
	}
	return record, nil
}

func (r *facilityRepository) List(ctx context.Context) ([]models.FacilityRecord, error) {
	return r.ListFiltered(ctx, models.FacilityFilter{})
}

func (r *facilityRepository) ListFiltered(ctx context.Context, filter models.FacilityFilter) ([]models.FacilityRecord, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.Published != nil {
		where = append(where, "published = ?")
		args = append(args, models.Flag(*filter.Published))
	}
	if filter.LGA != "" {
		where = append(where, "lga = ?")
		args = append(args, filter.LGA)
	}
	if filter.State != "" {
		where = append(where, "state = ?")
		args = append(args, filter.State)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", facilitySelectColumns, FacilityTable)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY createdAt, id"

	return r.query(ctx, query, args...)
}

func (r *facilityRepository) Update(ctx context.Context, id string, patch models.FacilityPatch) error {
	if patch.Personnel != nil {
		personnel := withPersonnelIDs(*patch.Personnel)
		patch.Personnel = &personnel
	}
	return updateRecord(ctx, r.db.DB, FacilityTable, id, patch.Assignments())
}

// withPersonnelIDs copies list, giving an id to each entry that lacks one.
func withPersonnelIDs(list models.JSONList[models.Personnel]) models.JSONList[models.Personnel] {
	out := make(models.JSONList[models.Personnel], len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
	}
	return out
}

func (r *facilityRepository) SetPublished(ctx context.Context, id string, published bool) error {
	query := fmt.Sprintf("UPDATE %s SET published = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?", FacilityTable)

	result, err := r.db.DB.ExecContext(ctx, query, models.Flag(published), id)
	if err != nil {
		return fmt.Errorf("failed to set published on facility record %s: %w", id, err)
	}
	return requireAffected(result, FacilityTable, id)
}

func (r *facilityRepository) DeleteByID(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db.DB, FacilityTable, id)
}

func (r *facilityRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.db.DB, FacilityTable)
}

func (r *facilityRepository) Search(ctx context.Context, keyword string) ([]models.FacilityRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE COALESCE(name, '') LIKE ? ESCAPE '\' OR COALESCE(streetAddress, '') LIKE ? ESCAPE '\'
		ORDER BY createdAt, id`, facilitySelectColumns, FacilityTable)
	pattern := likePattern(keyword)
	return r.query(ctx, query, pattern, pattern)
}

func (r *facilityRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db.DB, FacilityTable, id)
}

func (r *facilityRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db.DB, FacilityTable)
}

func (r *facilityRepository) CountByCategory(ctx context.Context, categories []string) ([]models.CategoryCount, error) {
	return countByCategory(ctx, r.db.DB, FacilityTable, "category", categories)
}

func (r *facilityRepository) CountPublished(ctx context.Context) (int64, int64, error) {
	query := fmt.Sprintf(`SELECT
		COALESCE(SUM(CASE WHEN published = 1 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN published = 1 THEN 0 ELSE 1 END), 0)
		FROM %s`, FacilityTable)

	var published, unpublished int64
	if err := r.db.DB.QueryRowContext(ctx, query).Scan(&published, &unpublished); err != nil {
		return 0, 0, fmt.Errorf("failed to count published facilities: %w", err)
	}
	return published, unpublished, nil
}

func (r *facilityRepository) query(ctx context.Context, query string, args ...any) ([]models.FacilityRecord, error) {
	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query facility records: %w", err)
	}
	defer rows.Close()

	records := []models.FacilityRecord{}
	for rows.Next() {
		record, err := scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan facility row: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating facility rows: %w", err)
	}

	return records, nil
}

func scanFacility(row rowScanner) (*models.FacilityRecord, error) {
	var rec models.FacilityRecord
	var latitude, longitude sql.NullFloat64
	var capacity, yearEstablished, numberOfFloors sql.NullInt64

	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.StreetAddress,
		&rec.CityTown,
		&rec.LGA,
		&rec.State,
		&latitude,
		&longitude,
		&rec.Category,
		(*models.Flag)(&rec.AblutionArea),
		(*models.Flag)(&rec.ToiletFacilities),
		(*models.Flag)(&rec.ParkingSpace),
		(*models.Flag)(&rec.WomensPrayerArea),
		(*models.Flag)(&rec.SecuritySystem),
		(*models.Flag)(&rec.Published),
		&rec.Pictures,
		&rec.Personnel,
		&rec.Madrasas,
		&rec.UploadedBy,
		&capacity,
		&yearEstablished,
		&numberOfFloors,
		&rec.PowerSupply,
		&rec.WaterSupply,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.Latitude = floatPtr(latitude)
	rec.Longitude = floatPtr(longitude)
	rec.Capacity = intPtr(capacity)
	rec.YearEstablished = intPtr(yearEstablished)
	rec.NumberOfFloors = intPtr(numberOfFloors)
	return &rec, nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
