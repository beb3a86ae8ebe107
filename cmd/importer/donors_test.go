package main

import (
	"os"
	"strings"
	"testing"

	"donor-finder-api/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "name,email,password,blood_group,age,latitude,longitude,profession,present_address\n"

func TestParseCSV(t *testing.T) {
	input := header +
		"Rahim,Rahim@Example.com,secret,o+,29,23.8103,90.4125,Engineer,Dhaka\n" +
		"Nadia,nadia@example.com,secret,AB-,41,,,Doctor,\"Chattogram, Agrabad\"\n"

	records, err := parseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "rahim@example.com", records[0].Email)
	assert.Equal(t, "O+", records[0].BloodGroup)
	assert.Equal(t, 29, records[0].Age)
	require.NotNil(t, records[0].Latitude)
	assert.Equal(t, 23.8103, *records[0].Latitude)
	assert.Equal(t, 90.4125, *records[0].Longitude)

	assert.Nil(t, records[1].Latitude)
	assert.Nil(t, records[1].Longitude)
	assert.Equal(t, "Chattogram, Agrabad", records[1].PresentAddress)
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "empty file",
			input:   "",
			wantErr: "failed to read header",
		},
		{
			name:    "wrong header",
			input:   "name,mail,password,blood_group,age,latitude,longitude,profession,present_address\n",
			wantErr: `unexpected column 2 "mail"`,
		},
		{
			name:    "missing column",
			input:   header + "Rahim,rahim@example.com,secret,O+,29,23.8,90.4,Engineer\n",
			wantErr: "failed to read record",
		},
		{
			name:    "bad age",
			input:   header + "Rahim,rahim@example.com,secret,O+,old,23.8,90.4,Engineer,Dhaka\n",
			wantErr: `line 2: invalid age: "old"`,
		},
		{
			name:    "half a coordinate",
			input:   header + "Rahim,rahim@example.com,secret,O+,29,23.8,,Engineer,Dhaka\n",
			wantErr: `line 2: invalid longitude: ""`,
		},
		{
			name:    "missing email",
			input:   header + "Rahim,,secret,O+,29,23.8,90.4,Engineer,Dhaka\n",
			wantErr: "line 2: name, email, password and blood_group are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseCSV_OutOfRangeCoordinate(t *testing.T) {
	input := header + "Rahim,rahim@example.com,secret,O+,29,95,90.4,Engineer,Dhaka\n"

	_, err := parseCSV(strings.NewReader(input))
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
}

func TestParseCSV_SampleFile(t *testing.T) {
	f, err := os.Open("testdata/donors.csv")
	require.NoError(t, err)
	defer f.Close()

	records, err := parseCSV(f)
	require.NoError(t, err)
	require.Len(t, records, 4)

	located := 0
	for _, r := range records {
		if r.Latitude != nil {
			located++
		}
	}
	assert.Equal(t, 3, located)
	assert.Equal(t, "Mirpur, Dhaka", records[0].PresentAddress)
}
