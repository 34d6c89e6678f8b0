package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nail-llm/internal/domain"
	"nail-llm/internal/llm"
	"nail-llm/internal/repository"
)

// ElicitationService orquesta el flujo completo: prior desde las
// selecciones, actualizacion bayesiana por respuesta, regla de corte,
// sesion entre round-trips y seleccion final de candidato.
type ElicitationService struct {
	freeSpecSvc  *FreeSpecService
	candidateSvc *CandidateService
	sessions     SessionStore
	imageClient  llm.ImageClient
	resultRepo   repository.ResultRepository
	logger       *zap.Logger
}

func NewElicitationService(
	freeSpecSvc *FreeSpecService,
	candidateSvc *CandidateService,
	sessions SessionStore,
	imageClient llm.ImageClient,
	resultRepo repository.ResultRepository,
	logger *zap.Logger,
) *ElicitationService {
	return &ElicitationService{
		freeSpecSvc:  freeSpecSvc,
		candidateSvc: candidateSvc,
		sessions:     sessions,
		imageClient:  imageClient,
		resultRepo:   resultRepo,
		logger:       logger,
	}
}

// Start arranca una elicitacion desde la foto y las selecciones iniciales.
// Devuelve una pregunta mas (con token de sesion) o el resultado final.
func (s *ElicitationService) Start(ctx context.Context, form domain.SelectionSet, image []byte) (domain.ElicitationResponse, error) {
	if len(image) == 0 {
		return domain.ElicitationResponse{}, domain.ErrMissingImage
	}

	posterior := BuildPrior(form)

	// El formulario inicial puede traer ya respondidas preguntas del catalogo.
	for _, q := range QuestionCatalog {
		if answer := form.First(q.ID); answer != "" {
			posterior = UpdatePosterior(posterior, q.ID, answer)
		}
	}

	return s.advance(ctx, form, image, posterior)
}

// Answer consume la sesion (un solo uso), valida la respuesta y avanza.
func (s *ElicitationService) Answer(ctx context.Context, token, questionID, value string) (domain.ElicitationResponse, error) {
	// La sesion se saca del store antes de validar: un token no puede
	// reutilizarse aunque este answer falle.
	session, ok := s.sessions.Take(token)
	if !ok {
		return domain.ElicitationResponse{}, domain.ErrSessionNotFound
	}

	if _, ok := LookupQuestion(questionID); !ok {
		return domain.ElicitationResponse{}, fmt.Errorf("%w: %s", domain.ErrUnknownQuestion, questionID)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.ElicitationResponse{}, domain.ErrEmptyAnswer
	}

	session.Form.Set(questionID, value)
	posterior := UpdatePosterior(session.Posterior, questionID, value)

	return s.advance(ctx, session.Form, session.Image, posterior)
}

// advance aplica la regla de corte y finaliza o pide una pregunta mas.
func (s *ElicitationService) advance(ctx context.Context, form domain.SelectionSet, image []byte, posterior domain.Distribution) (domain.ElicitationResponse, error) {
	if q, ok := NeedsMoreQuestions(posterior, form); ok {
		token := s.sessions.Put(domain.Session{
			Image:     image,
			Form:      form,
			Posterior: posterior,
		})
		s.logger.Info("elicitation needs another answer",
			zap.String("question_id", q.ID),
			zap.Float64("entropy", posterior.Entropy()),
		)
		question := q
		return domain.ElicitationResponse{
			Status:   domain.StatusNeedMore,
			Token:    token,
			Question: &question,
		}, nil
	}

	result, err := s.finalize(ctx, form, image, posterior)
	if err != nil {
		return domain.ElicitationResponse{}, err
	}
	return domain.ElicitationResponse{
		Status: domain.StatusFinal,
		Result: result,
	}, nil
}

// finalize genera, evalua y elige el candidato; la parte de imagen es un
// exito parcial: si falla se marca en el resultado sin abortar la respuesta.
func (s *ElicitationService) finalize(ctx context.Context, form domain.SelectionSet, image []byte, posterior domain.Distribution) (*domain.MakeupResult, error) {
	free := s.freeSpecSvc.Extract(ctx, form.First("free_text"))

	candidates, err := s.candidateSvc.GenerateCandidates(ctx, form, free)
	if err != nil {
		return nil, fmt.Errorf("generate candidates: %w", err)
	}
	candidates = s.candidateSvc.EvaluateCandidates(ctx, candidates, form, free)

	selected, err := SelectCandidate(candidates, posterior, free)
	if err != nil {
		return nil, fmt.Errorf("select candidate: %w", err)
	}

	s.logger.Info("candidate selected",
		zap.String("candidate_id", selected.ID),
		zap.Int("free_alignment", selected.FreeAlignment),
		zap.Int("specificity", free.Specificity),
	)

	result := &domain.MakeupResult{
		PlanText:    FormatPlanText(selected),
		CandidateID: selected.ID,
		Concept:     selected.Plan.Concept,
		TopTypes:    TopTypes(posterior, topTypeCount),
	}

	imageB64 := base64.StdEncoding.EncodeToString(image)
	edited, err := s.imageClient.Edit(ctx, BuildImageEditPrompt(selected), imageB64)
	if err != nil {
		s.logger.Warn("image edit failed", zap.Error(err))
		result.ImageError = "画像の生成に失敗しました"
	} else {
		result.ImageDataURL = "data:image/png;base64," + edited
	}

	s.archive(ctx, result, free)

	return result, nil
}

// archive guarda el resultado si hay repositorio configurado; un fallo
// aca solo se loguea.
func (s *ElicitationService) archive(ctx context.Context, result *domain.MakeupResult, free domain.FreeSpec) {
	if s.resultRepo == nil {
		return
	}
	rec := domain.ResultRecord{
		ID:          uuid.NewString(),
		CandidateID: result.CandidateID,
		Concept:     result.Concept,
		PlanText:    result.PlanText,
		TopTypes:    result.TopTypes,
		Specificity: free.Specificity,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.resultRepo.Save(ctx, rec); err != nil {
		s.logger.Warn("result archive failed", zap.Error(err))
	}
}
