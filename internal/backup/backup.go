package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DefaultKeep - сколько последних копий хранить при ротации
const DefaultKeep = 10

// Info описывает одну резервную копию
type Info struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	Comment   string    `json:"comment,omitempty"`
}

// Manager создаёт и восстанавливает файловые копии базы данных
type Manager struct {
	dbPath string
	dir    string
	keep   int
	now    func() time.Time
}

// NewManager создаёт менеджер резервных копий.
// Каталог копий создаётся при первом обращении.
func NewManager(dbPath, dir string, keep int) *Manager {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Manager{
		dbPath: dbPath,
		dir:    dir,
		keep:   keep,
		now:    time.Now,
	}
}

// Create копирует файл базы в каталог копий под именем с меткой времени.
// Непустой комментарий сохраняется в JSON-файле рядом с копией.
// Старые копии сверх лимита удаляются.
func (m *Manager) Create(comment string) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("employees_backup_%s.db", m.now().Format("20060102_150405"))
	path := filepath.Join(m.dir, name)

	if err := copyFile(m.dbPath, path); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	if comment != "" {
		info, err := os.Stat(path)
		if err != nil {
			return "", err
		}
		sidecar := Info{
			Name:      name,
			Path:      path,
			Size:      info.Size(),
			CreatedAt: m.now(),
			Comment:   comment,
		}
		data, err := json.MarshalIndent(sidecar, "", "  ")
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(path+".info", data, 0o644); err != nil {
			return "", err
		}
	}

	if err := m.rotate(); err != nil {
		return "", err
	}
	return path, nil
}

// List возвращает копии от новых к старым
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}

		path := filepath.Join(m.dir, entry.Name())
		stat, err := entry.Info()
		if err != nil {
			continue
		}

		info := Info{
			Name:      entry.Name(),
			Path:      path,
			Size:      stat.Size(),
			CreatedAt: stat.ModTime(),
		}

		if data, err := os.ReadFile(path + ".info"); err == nil {
			var sidecar Info
			if json.Unmarshal(data, &sidecar) == nil {
				info.Comment = sidecar.Comment
			}
		}

		backups = append(backups, info)
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// Restore заменяет рабочий файл базы указанной копией
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup not found: %w", err)
	}
	return copyFile(backupPath, m.dbPath)
}

// Delete удаляет копию вместе с файлом комментария
func (m *Manager) Delete(backupPath string) error {
	if err := os.Remove(backupPath); err != nil {
		return err
	}
	if err := os.Remove(backupPath + ".info"); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for _, old := range backups[min(m.keep, len(backups)):] {
		if err := m.Delete(old.Path); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
