package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// DefaultQueueSize is used when NewPool is given a non-positive queue size
const DefaultQueueSize = 64
