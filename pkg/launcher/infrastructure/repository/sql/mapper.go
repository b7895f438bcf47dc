package sql

import (
	"encoding/json"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/domain/model"
)

func fromDomainLaunchExecution(e *model.LaunchExecution) (*LaunchExecutionEntity, error) {
	command := e.Command
	if command == nil {
		command = []string{}
	}
	encoded, err := json.Marshal(command)
	if err != nil {
		return nil, err
	}
	return &LaunchExecutionEntity{
		ID:              e.ID,
		EntryPoint:      e.EntryPoint,
		WorkDir:         e.WorkDir,
		Command:         string(encoded),
		Mode:            e.Mode,
		Status:          e.Status.String(),
		ExitCode:        e.ExitCode,
		PID:             e.PID,
		AssignmentCount: e.AssignmentCount,
		SkippedLines:    e.SkippedLines,
		EnvSnapshot:     e.EnvSnapshot,
		ErrorMessage:    e.ErrorMessage,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		CreateTime:      e.CreateTime,
	}, nil
}

func toDomainLaunchExecution(entity *LaunchExecutionEntity) (*model.LaunchExecution, error) {
	var command []string
	if entity.Command != "" {
		if err := json.Unmarshal([]byte(entity.Command), &command); err != nil {
			return nil, err
		}
	}
	return &model.LaunchExecution{
		ID:              entity.ID,
		EntryPoint:      entity.EntryPoint,
		WorkDir:         entity.WorkDir,
		Command:         command,
		Mode:            entity.Mode,
		Status:          model.LaunchStatus(entity.Status),
		ExitCode:        entity.ExitCode,
		PID:             entity.PID,
		AssignmentCount: entity.AssignmentCount,
		SkippedLines:    entity.SkippedLines,
		EnvSnapshot:     entity.EnvSnapshot,
		ErrorMessage:    entity.ErrorMessage,
		StartTime:       entity.StartTime,
		EndTime:         entity.EndTime,
		CreateTime:      entity.CreateTime,
	}, nil
}
