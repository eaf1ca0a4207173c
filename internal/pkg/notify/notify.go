package notify

import (
	"goseller/internal/pkg/logger"
)

// LogNotifier implementa a porta domain.Notifier registrando as notificações
// no log estruturado. A renderização (toasts no cliente) está fora do escopo
// do portal; os handlers já devolvem o resultado de cada operação na resposta.
type LogNotifier struct {
	logger logger.Logger
}

// NewLogNotifier cria um novo notificador baseado em log.
func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// Success registra uma notificação de sucesso identificada pela operação.
func (n *LogNotifier) Success(operation string, title string, detail string) {
	n.logger.Info("Notificação de sucesso.", map[string]interface{}{
		"operation": operation,
		"title":     title,
		"detail":    detail,
	})
}

// Error registra uma notificação de erro identificada pela operação.
// Nenhuma falha é silenciosamente engolida: todo caminho de erro passa por aqui.
func (n *LogNotifier) Error(operation string, title string, detail string) {
	n.logger.Warn("Notificação de erro.", map[string]interface{}{
		"operation": operation,
		"title":     title,
		"detail":    detail,
	})
}
