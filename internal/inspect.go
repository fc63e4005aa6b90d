package internal

import (
	"collab-lab/repositories"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

//go:embed inspect.html
var templatesFS embed.FS

const defaultPrefix = "presence:"

type InspectRow struct {
	Key         string
	Kind        string
	Timestamp   string
	Room        string
	Participant string
	Detail      string
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string
	Items  []InspectRow
	Stats  map[string]any
}

// InspectHandler renders the badger entries under the "prefix" query parameter
// (the presence log by default) as an HTML table.
func InspectHandler(db *badger.DB, mapper RowMapper, statsProvider StatsProvider) http.Handler {
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))
	if mapper == nil {
		mapper = PresenceMapper
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = defaultPrefix
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		err := db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				key := string(item.Key())
				err := item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(key, val))
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})
}

// PresenceMapper decodes presence log entries and falls back to DefaultMapper
// for anything else.
func PresenceMapper(key string, val []byte) InspectRow {
	row := DefaultMapper(key, val)
	change, err := repositories.DecodeChange(key, val)
	if err != nil {
		return row
	}
	row.Kind = string(change.Kind)
	row.Timestamp = change.At.Format("15:04:05.000")
	row.Participant = change.Participant.ID
	if change.Participant.Name != "" {
		row.Detail = "name=" + change.Participant.Name
	}
	if model := change.Participant.AvatarModel(); model != "" {
		row.Detail = strings.TrimSpace(row.Detail + " model=" + model)
	}
	return row
}

// DefaultMapper only reads the key: "{namespace}:{room}:{nanos}:{id}".
func DefaultMapper(key string, val []byte) InspectRow {
	parts := strings.Split(key, ":")
	row := InspectRow{
		Key:         key,
		Kind:        "RAW",
		Timestamp:   "--:--:--",
		Room:        "-",
		Participant: "-",
		Detail:      "Size: " + strconv.Itoa(len(val)) + " bytes",
	}

	if len(parts) >= 4 {
		row.Room = parts[1]
		if tsNano, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			row.Timestamp = time.Unix(0, tsNano).Format("15:04:05")
		}
	}
	return row
}
