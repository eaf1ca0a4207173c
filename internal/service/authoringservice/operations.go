package authoringservice

import (
	"goseller/internal/domain"
)

// Camada fina de operações do Serviço: localiza a sessão e delega para a
// máquina de estados, devolvendo a visão atualizada.

// --- Imagens do produto ---

func (s *Service) AddImageURL(ctx domain.Context, sessionID, rawURL string) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.AddImageURL(rawURL); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

func (s *Service) AddImageBatch(ctx domain.Context, sessionID string, urls []string) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.AddImageBatch(urls); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

func (s *Service) AddImageData(ctx domain.Context, sessionID string, data []byte) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.AddImageData(data); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

func (s *Service) RemoveImage(ctx domain.Context, sessionID string, index int) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.RemoveImage(index); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

// --- Imagens da variante em edição ---

func (s *Service) AddVariantImageURL(ctx domain.Context, sessionID, rawURL string) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.AddVariantImageURL(rawURL); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

func (s *Service) AddVariantImageData(ctx domain.Context, sessionID string, data []byte) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.AddVariantImageData(data); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

func (s *Service) RemoveVariantImage(ctx domain.Context, sessionID string, index int) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.RemoveVariantImage(index); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

// --- Variantes ---

func (s *Service) StartNewVariant(ctx domain.Context, sessionID string) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if _, err := session.StartNewVariant(); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

func (s *Service) SaveQuickAddVariant(ctx domain.Context, sessionID string, v domain.Variant) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if _, err := session.SaveQuickAddVariant(v); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

func (s *Service) SaveEditedVariant(ctx domain.Context, sessionID string, v domain.Variant, images []string) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.SaveEditedVariant(v, images); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

func (s *Service) CancelEdit(ctx domain.Context, sessionID string) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	session.CancelEdit()
	return s.view(ctx, session), nil
}

// EditVariant abre a variante identificada pelo id do contrato externo
// (negativo = local) para edição.
func (s *Service) EditVariant(ctx domain.Context, sessionID string, wireID int64) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if _, err := session.EditVariant(domain.RefFromWire(wireID)); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}

// DeleteVariant remove a variante identificada pelo id do contrato externo.
func (s *Service) DeleteVariant(ctx domain.Context, sessionID string, wireID int64) (SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.DeleteVariant(domain.RefFromWire(wireID)); err != nil {
		return SessionView{}, err
	}
	return s.view(ctx, session), nil
}
