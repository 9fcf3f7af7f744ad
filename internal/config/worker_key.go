package config

type WorkerKeyStruct struct {
	JanitorQueue string
}

var WorkerKey = &WorkerKeyStruct{
	JanitorQueue: "janitor_queue",
}
