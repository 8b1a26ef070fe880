package settings

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Settings - пользовательские настройки, сохраняемые между запусками.
// В отличие от конфигурации окружения их можно менять из приложения.
type Settings struct {
	ExportDir       string `yaml:"export_dir"`
	BackupDir       string `yaml:"backup_dir"`
	BackupKeep      int    `yaml:"backup_keep"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

// Default возвращает настройки по умолчанию
func Default() Settings {
	return Settings{
		ExportDir:       "exports",
		BackupDir:       "backups",
		BackupKeep:      10,
		CacheTTLSeconds: 300,
	}
}

// Load читает настройки из YAML-файла.
// Отсутствующий файл не ошибка: возвращаются значения по умолчанию.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), err
	}
	return s, nil
}

// Save записывает настройки в YAML-файл
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
