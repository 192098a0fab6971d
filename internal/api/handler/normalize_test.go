package handler

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@x.com", normalizeEmail(" Ada@X.com "))
	assert.Equal(t, "ada@x.com", normalizeEmail("ada@x.com"))

	// Idempotent: a second pass changes nothing.
	once := normalizeEmail(" USER@Example.COM ")
	assert.Equal(t, once, normalizeEmail(once))
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", normalizeName("  Ada Lovelace  "))
	assert.Equal(t, "", normalizeName("   "))
}

func TestCheckPassword(t *testing.T) {
	assert.Nil(t, checkPassword("secret1"))
	assert.Nil(t, checkPassword(strings.Repeat("a", 72)))

	// Empty is the required tag's concern; one failure per field.
	assert.Nil(t, checkPassword(""))

	assert.NotNil(t, checkPassword("short"))
	assert.NotNil(t, checkPassword(strings.Repeat("a", 73)))
}

func TestCheckPasswordCountsBytes(t *testing.T) {
	// 40 runes, 80 bytes: the bound is bcrypt's and bcrypt counts bytes.
	fe := checkPassword(strings.Repeat("ñ", 40))
	require.NotNil(t, fe)
	assert.Equal(t, "password", fe.Path)
}

func TestParseBirthDateAbsent(t *testing.T) {
	got, fe := parseBirthDate(nil)
	assert.Nil(t, got)
	assert.Nil(t, fe)

	empty := "  "
	got, fe = parseBirthDate(&empty)
	assert.Nil(t, got)
	assert.Nil(t, fe)
}

func TestParseBirthDateValid(t *testing.T) {
	raw := "1990-06-15"
	got, fe := parseBirthDate(&raw)
	require.Nil(t, fe)
	require.NotNil(t, got)

	assert.Equal(t, time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), *got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestParseBirthDateToday(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")
	got, fe := parseBirthDate(&today)
	assert.Nil(t, fe)
	assert.NotNil(t, got)
}

func TestParseBirthDateFuture(t *testing.T) {
	future := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	got, fe := parseBirthDate(&future)
	assert.Nil(t, got)
	require.NotNil(t, fe)
	assert.Equal(t, "birthDate", fe.Path)
}

func TestParseBirthDateMalformed(t *testing.T) {
	for _, raw := range []string{"15-06-1990", "1990/06/15", "not-a-date", "1990-13-40"} {
		s := raw
		got, fe := parseBirthDate(&s)
		assert.Nilf(t, got, "input %q", raw)
		assert.NotNilf(t, fe, "input %q", raw)
	}
}
