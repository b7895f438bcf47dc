package sql

import "time"

// LaunchExecutionEntity is the persisted form of model.LaunchExecution.
type LaunchExecutionEntity struct {
	ID              string     `gorm:"column:id;primaryKey"`
	EntryPoint      string     `gorm:"column:entry_point"`
	WorkDir         string     `gorm:"column:work_dir"`
	Command         string     `gorm:"column:command"` // JSON array
	Mode            string     `gorm:"column:mode"`
	Status          string     `gorm:"column:status"`
	ExitCode        int        `gorm:"column:exit_code"`
	PID             int        `gorm:"column:pid"`
	AssignmentCount int        `gorm:"column:assignment_count"`
	SkippedLines    int        `gorm:"column:skipped_lines"`
	EnvSnapshot     string     `gorm:"column:env_snapshot"`
	ErrorMessage    string     `gorm:"column:error_message"`
	StartTime       time.Time  `gorm:"column:start_time"`
	EndTime         *time.Time `gorm:"column:end_time"`
	CreateTime      time.Time  `gorm:"column:create_time"`
}

func (LaunchExecutionEntity) TableName() string {
	return "launch_executions"
}
