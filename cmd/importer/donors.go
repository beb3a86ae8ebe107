package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"donor-finder-api/internal/auth"
	"donor-finder-api/internal/geo"
	"donor-finder-api/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// csvHeader is the expected column order of a donor file.
var csvHeader = []string{
	"name", "email", "password", "blood_group", "age",
	"latitude", "longitude", "profession", "present_address",
}

type DonorRecord struct {
	Name           string
	Email          string
	Password       string
	BloodGroup     string
	Age            int
	Latitude       *float64
	Longitude      *float64
	Profession     string
	PresentAddress string
}

func newDonorsCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "donors",
		Short: "Bulk load donors from a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return importDonors(cmd.Context(), cfg.DBSource, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the CSV file to import")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func importDonors(ctx context.Context, dsn, path string) error {
	log.Info().Str("file", path).Msg("starting import")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		return err
	}
	log.Info().Int("records", len(records)).Msg("parsed file")

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	if err := insertRecords(ctx, conn, records, time.Now().UTC()); err != nil {
		return err
	}

	if err := verifyImport(ctx, conn, records); err != nil {
		return err
	}

	log.Info().Int("records", len(records)).Msg("import complete")
	return nil
}

func parseCSV(r io.Reader) ([]DonorRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), csvHeader[i]) {
			return nil, fmt.Errorf("unexpected column %d %q, want %q", i+1, col, csvHeader[i])
		}
	}

	var records []DonorRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRecord(row []string) (DonorRecord, error) {
	for i := range row {
		row[i] = strings.TrimSpace(row[i])
	}

	rec := DonorRecord{
		Name:           row[0],
		Email:          strings.ToLower(row[1]),
		Password:       row[2],
		BloodGroup:     strings.ToUpper(row[3]),
		Profession:     row[7],
		PresentAddress: row[8],
	}
	if rec.Name == "" || rec.Email == "" || rec.Password == "" || rec.BloodGroup == "" {
		return DonorRecord{}, errors.New("name, email, password and blood_group are required")
	}

	age, err := strconv.Atoi(row[4])
	if err != nil || age < 0 || age > 150 {
		return DonorRecord{}, fmt.Errorf("invalid age: %q", row[4])
	}
	rec.Age = age

	// donors without a location are imported but never ranked
	if row[5] == "" && row[6] == "" {
		return rec, nil
	}
	lat, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return DonorRecord{}, fmt.Errorf("invalid latitude: %q", row[5])
	}
	lon, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return DonorRecord{}, fmt.Errorf("invalid longitude: %q", row[6])
	}
	if err := (geo.Coordinate{Latitude: lat, Longitude: lon}).Validate(); err != nil {
		return DonorRecord{}, err
	}
	rec.Latitude, rec.Longitude = &lat, &lon

	return rec, nil
}

func insertRecords(ctx context.Context, conn *pgx.Conn, records []DonorRecord, now time.Time) error {
	hashes := make([]string, len(records))
	for i, r := range records {
		h, err := auth.HashPassword(r.Password)
		if err != nil {
			return err
		}
		hashes[i] = h
	}

	_, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"users"},
		[]string{
			"id", "name", "email", "password_hash", "blood_group", "age",
			"latitude", "longitude", "profession", "present_address",
			"is_public", "status", "created_at",
		},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{
				uuid.NewString(), r.Name, r.Email, hashes[i], r.BloodGroup, r.Age,
				r.Latitude, r.Longitude, r.Profession, r.PresentAddress,
				true, string(models.StatusInactive), now,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy records: %w", err)
	}
	return nil
}

func verifyImport(ctx context.Context, conn *pgx.Conn, records []DonorRecord) error {
	emails := make([]string, len(records))
	for i, r := range records {
		emails[i] = r.Email
	}

	var count int
	err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE email = ANY($1)", emails).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count != len(records) {
		return fmt.Errorf("record count mismatch: expected %d, got %d", len(records), count)
	}

	var located int
	err = conn.QueryRow(ctx,
		"SELECT COUNT(*) FROM users WHERE email = ANY($1) AND latitude IS NOT NULL AND longitude IS NOT NULL",
		emails).Scan(&located)
	if err != nil {
		return fmt.Errorf("failed to count located records: %w", err)
	}

	log.Info().Int("located", located).Int("unlocated", count-located).Msg("verified import")
	return nil
}
