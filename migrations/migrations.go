// Пакет migrations — SQL-миграции схемы KV-хранилища (goose), встроенные в бинарь.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
