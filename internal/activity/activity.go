package activity

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Entry - одна запись журнала действий
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	Details   string    `json:"details,omitempty"`
}

// Logger пишет действия пользователя в текстовый журнал и в файл истории
// (по одному JSON-объекту на строку)
type Logger struct {
	slog        *slog.Logger
	logFile     *os.File
	historyPath string
}

// NewLogger создаёт журнал действий в указанном каталоге
func NewLogger(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(filepath.Join(dir, "activity.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	return &Logger{
		slog:        slog.New(slog.NewTextHandler(logFile, nil)),
		logFile:     logFile,
		historyPath: filepath.Join(dir, "history.jsonl"),
	}, nil
}

// Close закрывает файл текстового журнала.
// Файл истории открывается на каждую запись и здесь не участвует.
func (l *Logger) Close() error {
	return l.logFile.Close()
}

// Log фиксирует действие пользователя над сущностью
func (l *Logger) Log(username, action, entity, details string) error {
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Username:  username,
		Action:    action,
		Entity:    entity,
		Details:   details,
	}

	l.slog.Info("activity",
		slog.String("user", username),
		slog.String("action", action),
		slog.String("entity", entity),
		slog.String("details", details),
	)

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(l.historyPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// Tail возвращает последние n записей истории, новые в начале
func (l *Logger) Tail(n int) ([]Entry, error) {
	f, err := os.Open(l.historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if json.Unmarshal(scanner.Bytes(), &entry) != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
