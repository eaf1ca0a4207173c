package domain

// Context é uma interface que encapsula o Go context.Context.
// É usado para propagar o timeout e sinais de cancelamento pelas camadas
// sem criar dependência direta do pacote "context" no domínio.
type Context interface{}

// Notifier é a porta de notificação para o usuário (sucesso/erro por operação).
// A camada de apresentação (toasts, etc.) fica fora do núcleo; aqui apenas
// definimos o contrato, permitindo substituição em testes.
type Notifier interface {
	Success(operation string, title string, detail string)
	Error(operation string, title string, detail string)
}

// CacheInvalidator é a porta de invalidação do cache de consultas.
// Após um envio bem-sucedido, as listagens em cache precisam ser descartadas
// para que o vendedor veja o estado atualizado.
type CacheInvalidator interface {
	Invalidate(ctx Context, keys ...string) error
}

// UserRole é um tipo string para representar o papel do usuário no portal.
type UserRole string

// Constantes para os papéis reconhecidos pelo middleware de autorização.
const (
	RoleSeller UserRole = "seller"
	RoleAdmin  UserRole = "admin"
)
