package objective

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/okayr/okayr-api/internal/team"
	"gorm.io/gorm"
)

var ErrObjectiveNotFound = errors.New("objective not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveTree persists a whole objective tree in one transaction. Every
// parent/child boundary is reconciled the same way: children absent from the
// form are deleted, children with an id are updated (insert on miss), and
// children without an id are inserted. Key result progress is derived before
// writing.
func (r *Repository) SaveTree(ctx context.Context, form *ObjectiveForm) (uuid.UUID, error) {
	var objectiveID uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		objectiveID, err = r.saveObjective(tx, form)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return objectiveID, nil
}

func (r *Repository) saveObjective(tx *gorm.DB, form *ObjectiveForm) (uuid.UUID, error) {
	obj := Objective{
		Description: form.Description,
		TeamID:      form.TeamID,
		CycleID:     form.CycleID,
	}

	if form.ID != nil {
		obj.ID = *form.ID
		res := tx.Model(&Objective{}).Where("id = ?", obj.ID).
			Updates(map[string]any{
				"description": obj.Description,
				"team_id":     obj.TeamID,
				"cycle_id":    obj.CycleID,
			})
		if res.Error != nil {
			return uuid.Nil, res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&obj).Error; err != nil {
				return uuid.Nil, err
			}
		}
	} else {
		obj.ID = uuid.New()
		if err := tx.Create(&obj).Error; err != nil {
			return uuid.Nil, err
		}
	}

	existing, err := childIDs(tx, &KeyResult{}, "objective_id", obj.ID)
	if err != nil {
		return uuid.Nil, err
	}
	diff := ComputeDiff(existing, collectIDs(len(form.KeyResults), func(i int) *uuid.UUID { return form.KeyResults[i].ID }))
	for _, id := range diff.ToDelete {
		if err := r.deleteKeyResult(tx, id); err != nil {
			return uuid.Nil, err
		}
	}

	for i := range form.KeyResults {
		if err := r.saveKeyResult(tx, obj.ID, &form.KeyResults[i]); err != nil {
			return uuid.Nil, err
		}
	}

	return obj.ID, nil
}

func (r *Repository) saveKeyResult(tx *gorm.DB, objectiveID uuid.UUID, form *KeyResultForm) error {
	kr := KeyResult{
		ObjectiveID:     objectiveID,
		Description:     form.Description,
		Progress:        CalculateProgress(form),
		ConfidenceLevel: form.ConfidenceLevel,
	}

	if form.ID != nil {
		kr.ID = *form.ID
		res := tx.Model(&KeyResult{}).Where("id = ?", kr.ID).
			Updates(map[string]any{
				"objective_id":     kr.ObjectiveID,
				"description":      kr.Description,
				"progress":         kr.Progress,
				"confidence_level": kr.ConfidenceLevel,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&kr).Error; err != nil {
				return err
			}
		}
	} else {
		kr.ID = uuid.New()
		if err := tx.Create(&kr).Error; err != nil {
			return err
		}
	}

	if err := r.replaceAssignees(tx, kr.ID, form.Assignees); err != nil {
		return err
	}

	existing, err := childIDs(tx, &Initiative{}, "key_result_id", kr.ID)
	if err != nil {
		return err
	}
	diff := ComputeDiff(existing, collectIDs(len(form.Initiatives), func(i int) *uuid.UUID { return form.Initiatives[i].ID }))
	for _, id := range diff.ToDelete {
		if err := r.deleteInitiative(tx, id); err != nil {
			return err
		}
	}
	for i := range form.Initiatives {
		if err := r.saveInitiative(tx, kr.ID, &form.Initiatives[i]); err != nil {
			return err
		}
	}

	existingRisks, err := childIDs(tx, &Risk{}, "key_result_id", kr.ID)
	if err != nil {
		return err
	}
	riskDiff := ComputeDiff(existingRisks, collectIDs(len(form.Risks), func(i int) *uuid.UUID { return form.Risks[i].ID }))
	if len(riskDiff.ToDelete) > 0 {
		if err := tx.Where("id IN ?", riskDiff.ToDelete).Delete(&Risk{}).Error; err != nil {
			return err
		}
	}
	for i := range form.Risks {
		if err := r.saveRisk(tx, kr.ID, &form.Risks[i]); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) saveInitiative(tx *gorm.DB, keyResultID uuid.UUID, form *InitiativeForm) error {
	init := Initiative{
		KeyResultID: keyResultID,
		Description: form.Description,
		Status:      form.Status,
	}

	if form.ID != nil {
		init.ID = *form.ID
		res := tx.Model(&Initiative{}).Where("id = ?", init.ID).
			Updates(map[string]any{
				"key_result_id": init.KeyResultID,
				"description":   init.Description,
				"status":        init.Status,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&init).Error; err != nil {
				return err
			}
		}
	} else {
		init.ID = uuid.New()
		if err := tx.Create(&init).Error; err != nil {
			return err
		}
	}

	existing, err := childIDs(tx, &Task{}, "initiative_id", init.ID)
	if err != nil {
		return err
	}
	diff := ComputeDiff(existing, collectIDs(len(form.Tasks), func(i int) *uuid.UUID { return form.Tasks[i].ID }))
	if len(diff.ToDelete) > 0 {
		if err := tx.Where("id IN ?", diff.ToDelete).Delete(&Task{}).Error; err != nil {
			return err
		}
	}

	for i := range form.Tasks {
		tf := &form.Tasks[i]
		t := Task{
			InitiativeID: init.ID,
			Description:  tf.Description,
			Completed:    tf.Completed,
		}
		if tf.ID != nil {
			t.ID = *tf.ID
			res := tx.Model(&Task{}).Where("id = ?", t.ID).
				Updates(map[string]any{
					"initiative_id": t.InitiativeID,
					"description":   t.Description,
					"completed":     t.Completed,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Create(&t).Error; err != nil {
					return err
				}
			}
		} else {
			t.ID = uuid.New()
			if err := tx.Create(&t).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Repository) saveRisk(tx *gorm.DB, keyResultID uuid.UUID, form *RiskForm) error {
	risk := Risk{
		KeyResultID:      keyResultID,
		Description:      form.Description,
		CorrectiveAction: form.CorrectiveAction,
		Status:           form.Status,
	}

	if form.ID != nil {
		risk.ID = *form.ID
		res := tx.Model(&Risk{}).Where("id = ?", risk.ID).
			Updates(map[string]any{
				"key_result_id":     risk.KeyResultID,
				"description":       risk.Description,
				"corrective_action": risk.CorrectiveAction,
				"status":            risk.Status,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Create(&risk).Error
		}
		return nil
	}

	risk.ID = uuid.New()
	return tx.Create(&risk).Error
}

func (r *Repository) replaceAssignees(tx *gorm.DB, keyResultID uuid.UUID, assignees []AssigneeForm) error {
	if err := tx.Where("key_result_id = ?", keyResultID).Delete(&KeyResultAssignee{}).Error; err != nil {
		return err
	}
	for _, a := range assignees {
		link := KeyResultAssignee{KeyResultID: keyResultID, MemberID: a.ID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) deleteKeyResult(tx *gorm.DB, id uuid.UUID) error {
	initIDs, err := childIDs(tx, &Initiative{}, "key_result_id", id)
	if err != nil {
		return err
	}
	for _, initID := range initIDs {
		if err := r.deleteInitiative(tx, initID); err != nil {
			return err
		}
	}
	if err := tx.Where("key_result_id = ?", id).Delete(&Risk{}).Error; err != nil {
		return err
	}
	if err := tx.Where("key_result_id = ?", id).Delete(&KeyResultAssignee{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&KeyResult{}).Error
}

func (r *Repository) deleteInitiative(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("initiative_id = ?", id).Delete(&Task{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&Initiative{}).Error
}

// Delete removes an objective and all of its descendants.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		krIDs, err := childIDs(tx, &KeyResult{}, "objective_id", id)
		if err != nil {
			return err
		}
		for _, krID := range krIDs {
			if err := r.deleteKeyResult(tx, krID); err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&Objective{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrObjectiveNotFound
		}
		return nil
	})
}

// GetByID loads a full objective tree with assignees hydrated.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Objective, error) {
	var obj Objective
	err := r.db.WithContext(ctx).
		Preload("KeyResults.Initiatives.Tasks").
		Preload("KeyResults.Initiatives").
		Preload("KeyResults.Risks").
		Preload("KeyResults").
		First(&obj, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrObjectiveNotFound
		}
		return nil, err
	}
	if err := r.hydrateAssignees(ctx, []*Objective{&obj}); err != nil {
		return nil, err
	}
	return &obj, nil
}

// ListByCycleAndTeams returns the trees for one cycle across the given
// teams, newest first.
func (r *Repository) ListByCycleAndTeams(ctx context.Context, cycleID uuid.UUID, teamIDs []uuid.UUID) ([]Objective, error) {
	if len(teamIDs) == 0 {
		return []Objective{}, nil
	}
	var objs []Objective
	err := r.db.WithContext(ctx).
		Preload("KeyResults.Initiatives.Tasks").
		Preload("KeyResults.Initiatives").
		Preload("KeyResults.Risks").
		Preload("KeyResults").
		Where("cycle_id = ? AND team_id IN ?", cycleID, teamIDs).
		Order("created_at DESC").
		Find(&objs).Error
	if err != nil {
		return nil, err
	}

	refs := make([]*Objective, len(objs))
	for i := range objs {
		refs[i] = &objs[i]
	}
	if err := r.hydrateAssignees(ctx, refs); err != nil {
		return nil, err
	}
	return objs, nil
}

func (r *Repository) hydrateAssignees(ctx context.Context, objs []*Objective) error {
	var krIDs []uuid.UUID
	for _, o := range objs {
		for i := range o.KeyResults {
			krIDs = append(krIDs, o.KeyResults[i].ID)
		}
	}
	if len(krIDs) == 0 {
		return nil
	}

	var links []KeyResultAssignee
	if err := r.db.WithContext(ctx).Where("key_result_id IN ?", krIDs).Find(&links).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}

	memberIDs := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		memberIDs = append(memberIDs, l.MemberID)
	}
	var members []team.Member
	if err := r.db.WithContext(ctx).Where("id IN ?", memberIDs).Find(&members).Error; err != nil {
		return err
	}
	byID := make(map[uuid.UUID]team.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	byKR := make(map[uuid.UUID][]team.Member)
	for _, l := range links {
		if m, ok := byID[l.MemberID]; ok {
			byKR[l.KeyResultID] = append(byKR[l.KeyResultID], m)
		}
	}

	for _, o := range objs {
		for i := range o.KeyResults {
			o.KeyResults[i].Assignees = byKR[o.KeyResults[i].ID]
		}
	}
	return nil
}

func (r *Repository) CountByTeamID(teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&Objective{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}

func (r *Repository) CountByCycleID(cycleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&Objective{}).Where("cycle_id = ?", cycleID).Count(&count).Error
	return count, err
}

func childIDs(tx *gorm.DB, model any, column string, parentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := tx.Model(model).Where(fmt.Sprintf("%s = ?", column), parentID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func collectIDs(n int, at func(int) *uuid.UUID) []*uuid.UUID {
	ids := make([]*uuid.UUID, n)
	for i := 0; i < n; i++ {
		ids[i] = at(i)
	}
	return ids
}
