package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kadgis/fieldstore/internal/database"
	"github.com/kadgis/fieldstore/internal/models"
)

// PropertyTable is the table holding property (land enumeration) records.
const PropertyTable = "property_records"

// PropertySchema is the declared layout of the property table.
var PropertySchema = database.TableSchema{
	Name: PropertyTable,
	Columns: []database.Column{
		{Name: "id", Type: database.TypeText, PrimaryKey: true, NotNull: true},
		{Name: "date", Type: database.TypeText},
		{Name: "plotNumber", Type: database.TypeText},
		{Name: "name", Type: database.TypeText},
		{Name: "gender", Type: database.TypeText},
		{Name: "maritalStatus", Type: database.TypeText},
		{Name: "dob", Type: database.TypeText},
		{Name: "nationality", Type: database.TypeText},
		{Name: "stateOfOrigin", Type: database.TypeText},
		{Name: "lga", Type: database.TypeText},
		{Name: "email", Type: database.TypeText},
		{Name: "nin", Type: database.TypeText},
		{Name: "bvn", Type: database.TypeText},
		{Name: "phoneNumber1", Type: database.TypeText},
		{Name: "phoneNumber2", Type: database.TypeText},
		{Name: "landSize", Type: database.TypeText},
		{Name: "landUse", Type: database.TypeText},
		{Name: "landPurpose", Type: database.TypeText},
		{Name: "propertyType", Type: database.TypeText},
		{Name: "propertyOccupancy", Type: database.TypeText},
		{Name: "accessAllowed", Type: database.TypeText},
		{Name: "numberOfBuildings", Type: database.TypeInteger},
		{Name: "numberOfOccupants", Type: database.TypeInteger},
		{Name: "street", Type: database.TypeText},
		{Name: "pictures", Type: database.TypeText, Default: "'[]'"},
		{Name: "createdAt", Type: database.TypeText, Default: "CURRENT_TIMESTAMP"},
		{Name: "updatedAt", Type: database.TypeText, Default: "CURRENT_TIMESTAMP"},
		{Name: "latitude", Type: database.TypeReal},
		{Name: "longitude", Type: database.TypeReal},
		{Name: "uploadedBy", Type: database.TypeText},
	},
	Indexes: []database.Index{
		{Name: "idx_property_records_land_use", Columns: []string{"landUse"}},
	},
}

const propertyInsertColumns = `id, date, plotNumber, name, gender, maritalStatus, dob, nationality,
	stateOfOrigin, lga, email, nin, bvn, phoneNumber1, phoneNumber2, landSize, landUse,
	landPurpose, propertyType, propertyOccupancy, accessAllowed, numberOfBuildings,
	numberOfOccupants, street, pictures, latitude, longitude, uploadedBy`

const propertyInsertCount = 28

const propertySelectColumns = `id, COALESCE(date, ''), COALESCE(plotNumber, ''), COALESCE(name, ''),
	COALESCE(gender, ''), COALESCE(maritalStatus, ''), COALESCE(dob, ''), COALESCE(nationality, ''),
	COALESCE(stateOfOrigin, ''), COALESCE(lga, ''), COALESCE(email, ''), COALESCE(nin, ''),
	COALESCE(bvn, ''), COALESCE(phoneNumber1, ''), COALESCE(phoneNumber2, ''), COALESCE(landSize, ''),
	COALESCE(landUse, ''), COALESCE(landPurpose, ''), COALESCE(propertyType, ''),
	COALESCE(propertyOccupancy, ''), COALESCE(accessAllowed, ''), COALESCE(numberOfBuildings, 0),
	COALESCE(numberOfOccupants, 0), COALESCE(street, ''), pictures, COALESCE(createdAt, ''),
	COALESCE(updatedAt, ''), latitude, longitude, COALESCE(uploadedBy, '')`

// PropertyRepository defines data access for property records.
type PropertyRepository interface {
	// Add inserts the draft under a newly generated id and returns the id.
	Add(ctx context.Context, draft models.PropertyDraft) (string, error)

	// GetByID returns nil, nil when no record has the id.
	GetByID(ctx context.Context, id string) (*models.PropertyRecord, error)

	// List returns every record in creation order.
	List(ctx context.Context) ([]models.PropertyRecord, error)

	// Update writes only the patched fields and refreshes updatedAt.
	// Returns ErrNotFound when the id matches no row.
	Update(ctx context.Context, id string, patch models.PropertyPatch) error

	// DeleteByID removes one record. Deleting an unknown id is not an error.
	DeleteByID(ctx context.Context, id string) error

	// DeleteAll wipes the table and reports how many rows were removed.
	DeleteAll(ctx context.Context) (int64, error)

	// Search matches keyword as a literal substring of name or plotNumber,
	// ASCII case-insensitively. An empty keyword matches every record.
	Search(ctx context.Context, keyword string) ([]models.PropertyRecord, error)

	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)

	// CountByCategory tallies records per landUse value, one entry per
	// requested value in request order.
	CountByCategory(ctx context.Context, landUses []string) ([]models.CategoryCount, error)
}

type propertyRepository struct {
	db *database.Database
}

// NewPropertyRepository creates a new instance of PropertyRepository.
func NewPropertyRepository(db *database.Database) PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

func (r *propertyRepository) Add(ctx context.Context, draft models.PropertyDraft) (string, error) {
	id, err := newRecordID()
	if err != nil {
		return "", err
	}

	query := insertStatement(PropertyTable, propertyInsertColumns, propertyInsertCount)

	_, err = r.db.DB.ExecContext(ctx, query,
		id,
		draft.Date,
		draft.PlotNumber,
		draft.Name,
		draft.Gender,
		draft.MaritalStatus,
		draft.DOB,
		draft.Nationality,
		draft.StateOfOrigin,
		draft.LGA,
		draft.Email,
		draft.NIN,
		draft.BVN,
		draft.PhoneNumber1,
		draft.PhoneNumber2,
		draft.LandSize,
		draft.LandUse,
		draft.LandPurpose,
		draft.PropertyType,
		draft.PropertyOccupancy,
		draft.AccessAllowed,
		int64(draft.NumberOfBuildings),
		int64(draft.NumberOfOccupants),
		draft.Street,
		draft.Pictures,
		nullFloat(draft.Latitude),
		nullFloat(draft.Longitude),
		draft.UploadedBy,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert property record: %w", err)
	}

	return id, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*models.PropertyRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", propertySelectColumns, PropertyTable)

	record, err := scanProperty(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query property record %s: %w", id, err)
	}
	return record, nil
}

func (r *propertyRepository) List(ctx context.Context) ([]models.PropertyRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY createdAt, id", propertySelectColumns, PropertyTable)
	return r.query(ctx, query)
}

func (r *propertyRepository) Update(ctx context.Context, id string, patch models.PropertyPatch) error {
	return updateRecord(ctx, r.db.DB, PropertyTable, id, patch.Assignments())
}

func (r *propertyRepository) DeleteByID(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db.DB, PropertyTable, id)
}

func (r *propertyRepository) DeleteAll(ctx context.Context) (int64, error) {
	return deleteAll(ctx, r.db.DB, PropertyTable)
}

func (r *propertyRepository) Search(ctx context.Context, keyword string) ([]models.PropertyRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
		WHERE COALESCE(name, '') LIKE ? ESCAPE '\' OR COALESCE(plotNumber, '') LIKE ? ESCAPE '\'
		ORDER BY createdAt, id`, propertySelectColumns, PropertyTable)
	pattern := likePattern(keyword)
	return r.query(ctx, query, pattern, pattern)
}

func (r *propertyRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db.DB, PropertyTable, id)
}

func (r *propertyRepository) Count(ctx context.Context) (int64, error) {
	return count(ctx, r.db.DB, PropertyTable)
}

func (r *propertyRepository) CountByCategory(ctx context.Context, landUses []string) ([]models.CategoryCount, error) {
	return countByCategory(ctx, r.db.DB, PropertyTable, "landUse", landUses)
}

func (r *propertyRepository) query(ctx context.Context, query string, args ...any) ([]models.PropertyRecord, error) {
	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query property records: %w", err)
	}
	defer rows.Close()

	records := []models.PropertyRecord{}
	for rows.Next() {
		record, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}

	return records, nil
}

func scanProperty(row rowScanner) (*models.PropertyRecord, error) {
	var rec models.PropertyRecord
	var latitude, longitude sql.NullFloat64

	err := row.Scan(
		&rec.ID,
		&rec.Date,
		&rec.PlotNumber,
		&rec.Name,
		&rec.Gender,
		&rec.MaritalStatus,
		&rec.DOB,
		&rec.Nationality,
		&rec.StateOfOrigin,
		&rec.LGA,
		&rec.Email,
		&rec.NIN,
		&rec.BVN,
		&rec.PhoneNumber1,
		&rec.PhoneNumber2,
		&rec.LandSize,
		&rec.LandUse,
		&rec.LandPurpose,
		&rec.PropertyType,
		&rec.PropertyOccupancy,
		&rec.AccessAllowed,
		&rec.NumberOfBuildings,
		&rec.NumberOfOccupants,
		&rec.Street,
		&rec.Pictures,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&latitude,
		&longitude,
		&rec.UploadedBy,
	)
	if err != nil {
		return nil, err
	}

	rec.Latitude = floatPtr(latitude)
	rec.Longitude = floatPtr(longitude)
	return &rec, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
