package slot

import "github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"

// Переиспользуем интерфейс исполнителя из dbmetrics для работы с БД
// Поддерживает *sql.DB и обёртку *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
