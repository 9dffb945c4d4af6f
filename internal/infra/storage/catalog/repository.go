package catalog

// Repository репозиторий мастеров и услуг бизнеса
// Удаление мягкое: записи деактивируются через is_active
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
