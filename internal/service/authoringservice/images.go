package authoringservice

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apperror "goseller/internal/errors"
)

// MaxImagesPerList é o máximo de imagens por produto e por variante.
const MaxImagesPerList = 8

// addToImageList aplica as regras do gerenciador de lista de imagens a uma
// lista arbitrária (do produto ou da variante em edição).
//   - checkDuplicates vale apenas para o caminho de URL única do produto.
//   - O limite nunca é truncado silenciosamente: exceder rejeita a operação.
func addToImageList(list []string, items []string, checkDuplicates bool) ([]string, error) {
	if len(list)+len(items) > MaxImagesPerList {
		return list, apperror.NewLimitError(fmt.Sprintf("Você pode enviar no máximo %d imagens.", MaxImagesPerList))
	}

	if checkDuplicates {
		for _, item := range items {
			for _, existing := range list {
				if existing == item {
					return list, apperror.NewLimitError("Esta URL de imagem já foi adicionada.")
				}
			}
		}
	}

	return append(list, items...), nil
}

// validateImageURL verifica se o texto é sintaticamente uma URL com esquema
// http/https.
func validateImageURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return apperror.NewValidationError("Informe uma URL de imagem válida.")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return apperror.NewValidationError("A URL da imagem deve começar com http:// ou https://.")
	}
	return nil
}

// decodeImageData converte bytes brutos de imagem em uma representação
// exibível (data-URL base64). Conteúdo que não for imagem é rejeitado com
// erro de decodificação e a lista permanece inalterada.
//
// A decodificação acontece fora do lock da sessão; o resultado é anexado ao
// estado mais recente, então decodificações concorrentes não se perdem.
func decodeImageData(data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperror.NewDecodeError("Houve um problema ao processar sua imagem. Tente outro arquivo.", nil)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", apperror.NewDecodeError("O arquivo enviado não é uma imagem válida.", nil)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded), nil
}

// removeFromImageList remove a entrada no índice dado e reindexa as restantes
// (sem lacunas).
func removeFromImageList(list []string, index int) ([]string, error) {
	if index < 0 || index >= len(list) {
		return list, apperror.NewValidationError(fmt.Sprintf("Índice de imagem inválido: %d.", index))
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:index]...)
	out = append(out, list[index+1:]...)
	return out, nil
}

// --- Operações da sessão sobre a lista de imagens do PRODUTO ---

// AddImageURL adiciona uma URL única à lista do produto: valida o esquema,
// rejeita duplicatas e respeita o limite.
func (s *Session) AddImageURL(raw string) error {
	if err := validateImageURL(raw); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := addToImageList(s.Draft.Images, []string{raw}, true)
	if err != nil {
		return err
	}
	s.Draft.Images = updated
	s.touch()
	return nil
}

// AddImageBatch anexa um lote de URLs (upload múltiplo). O limite continua
// valendo para o lote inteiro; duplicatas não são verificadas neste caminho.
func (s *Session) AddImageBatch(urls []string) error {
	if len(urls) == 0 {
		return apperror.NewValidationError("Nenhuma URL de imagem informada.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := addToImageList(s.Draft.Images, urls, false)
	if err != nil {
		return err
	}
	s.Draft.Images = updated
	s.touch()
	return nil
}

// AddImageData decodifica bytes de imagem e anexa a representação exibível.
func (s *Session) AddImageData(data []byte) error {
	dataURL, err := decodeImageData(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := addToImageList(s.Draft.Images, []string{dataURL}, false)
	if err != nil {
		return err
	}
	s.Draft.Images = updated
	s.touch()
	return nil
}

// RemoveImage remove a imagem do produto no índice dado.
func (s *Session) RemoveImage(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := removeFromImageList(s.Draft.Images, index)
	if err != nil {
		return err
	}
	s.Draft.Images = updated
	s.touch()
	return nil
}

// --- Operações sobre a lista de imagens da VARIANTE em edição ---

// AddVariantImageURL anexa uma URL à lista da variante selecionada.
// Diferente da lista do produto, duplicatas não são verificadas aqui.
func (s *Session) AddVariantImageURL(raw string) error {
	if err := validateImageURL(raw); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Selected == nil {
		return apperror.NewConflictError("Nenhuma variante em edição para receber imagens.")
	}

	updated, err := addToImageList(s.StagedImages, []string{raw}, false)
	if err != nil {
		return err
	}
	s.StagedImages = updated
	s.touch()
	return nil
}

// AddVariantImageData decodifica bytes e anexa à lista da variante selecionada.
func (s *Session) AddVariantImageData(data []byte) error {
	dataURL, err := decodeImageData(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Selected == nil {
		return apperror.NewConflictError("Nenhuma variante em edição para receber imagens.")
	}

	updated, err := addToImageList(s.StagedImages, []string{dataURL}, false)
	if err != nil {
		return err
	}
	s.StagedImages = updated
	s.touch()
	return nil
}

// RemoveVariantImage remove a imagem da variante no índice dado.
func (s *Session) RemoveVariantImage(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Selected == nil {
		return apperror.NewConflictError("Nenhuma variante em edição.")
	}

	updated, err := removeFromImageList(s.StagedImages, index)
	if err != nil {
		return err
	}
	s.StagedImages = updated
	s.touch()
	return nil
}
