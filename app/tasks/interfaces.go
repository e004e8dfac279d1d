package tasks

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application and the suppression journal to move I/O off
// the classification flow.
// Example usage:
//
//	scheduler := NewScheduler(workerCount)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewPersistSettingsTask(snapshot, settingsRepo))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
