package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/employee-directory/internal/domain"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUpdateFlags(t *testing.T) (*employeeFlags, *cobra.Command) {
	t.Helper()
	var flags employeeFlags
	cmd := &cobra.Command{Use: "update"}
	flags.register(cmd)
	return &flags, cmd
}

func TestEmployeeFlagsMergeKeepsStoredFields(t *testing.T) {
	flags, cmd := newUpdateFlags(t)
	require.NoError(t, cmd.Flags().Set("position", "Старший инженер"))

	current := &domain.Employee{
		ID:        7,
		LastName:  "Иванов",
		FirstName: "Иван",
		Position:  strPtr("Инженер"),
		Email:     strPtr("ivanov@example.com"),
		Photo:     []byte{0x01, 0x02, 0x03},
		Room:      strPtr("314"),
	}
	flags.apply(cmd, current)
	require.NoError(t, flags.loadPhoto(cmd))
	req := flags.request()

	// Изменённый флаг попадает в запрос, остальное берётся из записи
	require.NotNil(t, req.Position)
	assert.Equal(t, "Старший инженер", *req.Position)
	assert.Equal(t, "Иванов", req.LastName)
	require.NotNil(t, req.Email)
	assert.Equal(t, "ivanov@example.com", *req.Email)
	require.NotNil(t, req.Room)
	assert.Equal(t, "314", *req.Room)

	// Фотография переживает полную замену записи
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, req.Photo)
}

func TestEmployeeFlagsLoadPhoto(t *testing.T) {
	flags, cmd := newUpdateFlags(t)

	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o644))
	require.NoError(t, cmd.Flags().Set("photo", path))

	flags.apply(cmd, &domain.Employee{LastName: "Иванов", FirstName: "Иван", Photo: []byte("старая")})
	require.NoError(t, flags.loadPhoto(cmd))

	assert.Equal(t, []byte("png-bytes"), flags.request().Photo)
}

func TestEmployeeFlagsClearPhoto(t *testing.T) {
	flags, cmd := newUpdateFlags(t)
	require.NoError(t, cmd.Flags().Set("photo", ""))

	flags.apply(cmd, &domain.Employee{LastName: "Иванов", FirstName: "Иван", Photo: []byte("старая")})
	require.NoError(t, flags.loadPhoto(cmd))

	// --photo с пустым значением очищает фотографию
	assert.Nil(t, flags.request().Photo)
}

func TestEmployeeFlagsLoadPhotoMissingFile(t *testing.T) {
	flags, cmd := newUpdateFlags(t)
	require.NoError(t, cmd.Flags().Set("photo", filepath.Join(t.TempDir(), "нет.png")))

	assert.Error(t, flags.loadPhoto(cmd))
}
