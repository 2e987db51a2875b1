package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pawpal-planner/internal/domain/pets"
	"pawpal-planner/internal/domain/tasks"
	"pawpal-planner/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, tasksSvc *tasks.Service, petsSvc *pets.Service, defaults Config) {
	r.Route("/schedule", func(sr chi.Router) {
		sr.Post("/", generateScheduleHandler(tasksSvc, petsSvc, defaults))
		sr.Get("/conflicts", detectConflictsHandler(tasksSvc, petsSvc))
	})
}

type generateScheduleRequest struct {
	// Overrides opcionales sobre la config del server.
	WindowStart           string `json:"window_start"` // "HH:MM"
	WindowEnd             string `json:"window_end"`   // "HH:MM"
	SlotMinutes           *int   `json:"slot_minutes"`
	BreakThresholdMinutes *int   `json:"break_threshold_minutes"`
	BreakMinutes          *int   `json:"break_minutes"`
}

type conflictResponse struct {
	FirstTaskID  string `json:"first_task_id"`
	SecondTaskID string `json:"second_task_id"`
	Kind         string `json:"kind"`
	OverlapStart string `json:"overlap_start"`
	OverlapEnd   string `json:"overlap_end"`
	Detail       string `json:"detail"`
}

type placementResponse struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	PetID  string `json:"pet_id"`
	Start  string `json:"start"`
	End    string `json:"end"`
	Reason string `json:"reason"`
}

type unplacedResponse struct {
	TaskID string `json:"task_id"`
	Title  string `json:"title"`
	PetID  string `json:"pet_id"`
}

type decisionResponse struct {
	TaskID        string `json:"task_id"`
	Title         string `json:"title"`
	PetID         string `json:"pet_id"`
	Time          string `json:"time,omitempty"` // vacío = unplaced
	Reason        string `json:"reason"`
	PreferredTime string `json:"preferred_time,omitempty"`
	Detail        string `json:"detail"`
}

type violationResponse struct {
	Kind    string   `json:"kind"`
	TaskIDs []string `json:"task_ids"`
	Detail  string   `json:"detail"`
}

type validationResponse struct {
	OK         bool                `json:"ok"`
	Violations []violationResponse `json:"violations"`
}

type generateScheduleResponse struct {
	Conflicts  []conflictResponse  `json:"conflicts"`
	Placements []placementResponse `json:"placements"`
	Unplaced   []unplacedResponse  `json:"unplaced"`
	Decisions  []decisionResponse  `json:"decisions"`
	Validation validationResponse  `json:"validation"`
}

func generateScheduleHandler(tasksSvc *tasks.Service, petsSvc *pets.Service, defaults Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middleware.GetOwnerID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		cfg := defaults
		if r.ContentLength != 0 {
			var req generateScheduleRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			var err error
			if cfg, err = applyOverrides(cfg, req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}

		pending, petNames, err := loadPlanningInput(r.Context(), tasksSvc, petsSvc, ownerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Pre-check, allocator, explicación y validación: el pipeline completo
		// en una sola corrida síncrona.
		conflicts := DetectConflicts(pending, petNames)

		res, err := Generate(pending, cfg)
		if err != nil {
			// Input malformado: fail fast antes de cualquier colocación.
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		decisions := Explain(res)
		validation := Validate(res.Placements)

		writeJSON(w, http.StatusOK, toGenerateResponse(conflicts, res, decisions, validation))
	}
}

func detectConflictsHandler(tasksSvc *tasks.Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middleware.GetOwnerID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		pending, petNames, err := loadPlanningInput(r.Context(), tasksSvc, petsSvc, ownerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]conflictResponse, 0)
		for _, c := range DetectConflicts(pending, petNames) {
			out = append(out, toConflictResponse(c))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// loadPlanningInput arma el input del engine: tareas pendientes del dueño
// (ordenadas explícitamente, nunca por efecto colateral) + nombres de
// mascotas para los warnings.
func loadPlanningInput(ctx context.Context, tasksSvc *tasks.Service, petsSvc *pets.Service, ownerID string) ([]tasks.Task, map[string]string, error) {
	all, err := tasksSvc.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}

	pending := make([]tasks.Task, 0, len(all))
	for _, t := range tasks.SortForDisplay(all) {
		if !t.Completed {
			pending = append(pending, t)
		}
	}

	petList, err := petsSvc.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	petNames := make(map[string]string, len(petList))
	for _, p := range petList {
		petNames[p.ID] = p.Name
	}

	return pending, petNames, nil
}

func applyOverrides(cfg Config, req generateScheduleRequest) (Config, error) {
	if strings.TrimSpace(req.WindowStart) != "" {
		v, err := tasks.ParseTimeOfDay(req.WindowStart)
		if err != nil {
			return Config{}, err
		}
		cfg.WindowStart = v
	}
	if strings.TrimSpace(req.WindowEnd) != "" {
		v, err := tasks.ParseTimeOfDay(req.WindowEnd)
		if err != nil {
			return Config{}, err
		}
		cfg.WindowEnd = v
	}
	if req.SlotMinutes != nil {
		cfg.SlotMinutes = *req.SlotMinutes
	}
	if req.BreakThresholdMinutes != nil {
		cfg.BreakThresholdMinutes = *req.BreakThresholdMinutes
	}
	if req.BreakMinutes != nil {
		cfg.BreakMinutes = *req.BreakMinutes
	}
	return cfg, nil
}

func toGenerateResponse(conflicts []Conflict, res Result, decisions []DecisionRecord, validation ValidationResult) generateScheduleResponse {
	out := generateScheduleResponse{
		Conflicts:  make([]conflictResponse, 0, len(conflicts)),
		Placements: make([]placementResponse, 0, len(res.Placements)),
		Unplaced:   make([]unplacedResponse, 0, len(res.Unplaced)),
		Decisions:  make([]decisionResponse, 0, len(decisions)),
		Validation: validationResponse{OK: validation.OK, Violations: make([]violationResponse, 0, len(validation.Violations))},
	}

	for _, c := range conflicts {
		out.Conflicts = append(out.Conflicts, toConflictResponse(c))
	}
	for _, p := range res.Placements {
		out.Placements = append(out.Placements, placementResponse{
			TaskID: p.Task.ID,
			Title:  p.Task.Title,
			PetID:  p.Task.PetID,
			Start:  p.Start.String(),
			End:    p.End().String(),
			Reason: string(p.Reason),
		})
	}
	for _, t := range res.Unplaced {
		out.Unplaced = append(out.Unplaced, unplacedResponse{
			TaskID: t.ID,
			Title:  t.Title,
			PetID:  t.PetID,
		})
	}
	for _, d := range decisions {
		dr := decisionResponse{
			TaskID: d.TaskID,
			Title:  d.Title,
			PetID:  d.PetID,
			Reason: string(d.Reason),
			Detail: d.Detail,
		}
		if d.Time != nil {
			dr.Time = d.Time.String()
		}
		if d.PreferredTime != nil {
			dr.PreferredTime = d.PreferredTime.String()
		}
		out.Decisions = append(out.Decisions, dr)
	}
	for _, v := range validation.Violations {
		out.Validation.Violations = append(out.Validation.Violations, violationResponse{
			Kind:    string(v.Kind),
			TaskIDs: v.TaskIDs,
			Detail:  v.Detail,
		})
	}

	return out
}

func toConflictResponse(c Conflict) conflictResponse {
	return conflictResponse{
		FirstTaskID:  c.FirstTaskID,
		SecondTaskID: c.SecondTaskID,
		Kind:         string(c.Kind),
		OverlapStart: c.OverlapStart.String(),
		OverlapEnd:   c.OverlapEnd.String(),
		Detail:       c.Detail,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos;
// extraer un helper compartido recién vale la pena cuando se repita más.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
