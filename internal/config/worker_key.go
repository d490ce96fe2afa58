package config

type WorkerKeyStruct struct {
	AdminLogQueue string
}

var WorkerKey = &WorkerKeyStruct{
	AdminLogQueue: "admin_log_queue",
}
