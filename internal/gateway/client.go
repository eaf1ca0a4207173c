package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperror "goseller/internal/errors"
	"goseller/internal/pkg/logger"
)

// Client é o cliente HTTP para o backend REST do marketplace.
// Faz o papel de "conexão de infraestrutura" dos repositórios, como o *sql.DB
// faz para o banco: os repositórios montam as chamadas, o Client executa e
// traduz falhas para a taxonomia de erros da aplicação.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logger.Logger
}

// NewClient cria um novo cliente do gateway.
// O timeout cobre a requisição inteira; não há cancelamento de envio em
// andamento — uma resposta (sucesso ou falha) sempre resolve a operação.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

// fieldError é a forma de cada item do array de erros de validação do backend.
type fieldError struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

// errorEnvelope cobre os dois formatos de corpo de erro que o backend usa:
// {"error": [...{path,message}]} ou {"error": "mensagem"}.
type errorEnvelope struct {
	Error json.RawMessage `json:"error"`
}

// DoJSON executa uma requisição JSON contra o backend e decodifica a resposta
// em out (se out != nil). query pode ser nil.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternalError("Falha ao serializar o payload da requisição.", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return apperror.NewInternalError("Falha ao montar a requisição para o marketplace.", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Falha de rede: o estado local do chamador permanece intacto
		// para que o usuário possa tentar novamente sem perda de dados.
		c.logger.Error("Falha de rede ao chamar o marketplace.", err)
		return apperror.NewGatewayError("Não foi possível contatar o marketplace. Tente novamente.", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.translateError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperror.NewDecodeError("Resposta malformada do marketplace.", err)
		}
	}
	return nil
}

// translateError converte um corpo de erro do backend para a taxonomia local,
// distinguindo arrays estruturados de validação de falhas genéricas.
func (c *Client) translateError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Error) > 0 {

		// Tentativa 1: array de erros de validação {path, message}
		var fieldErrors []fieldError
		if err := json.Unmarshal(envelope.Error, &fieldErrors); err == nil && len(fieldErrors) > 0 {
			parts := make([]string, 0, len(fieldErrors))
			for _, fe := range fieldErrors {
				field := "Campo"
				if len(fe.Path) > 0 {
					field = fe.Path[0]
				}
				parts = append(parts, fmt.Sprintf("%s: %s", field, fe.Message))
			}
			return apperror.NewGatewayValidationError("Validação falhou: "+strings.Join(parts, ", "), resp.StatusCode)
		}

		// Tentativa 2: mensagem simples
		var msg string
		if err := json.Unmarshal(envelope.Error, &msg); err == nil && msg != "" {
			return apperror.NewGatewayError(msg, resp.StatusCode, nil)
		}
	}

	return apperror.NewGatewayError(
		fmt.Sprintf("Falha na requisição ao marketplace (HTTP %d).", resp.StatusCode),
		resp.StatusCode, nil)
}
