package config

type ProblemSvcCfg struct {
	// ValidationConcurrency caps how many reference-solution languages are judged at once.
	ValidationConcurrency int
}

func NewProblemSvcCfg() *ProblemSvcCfg {
	return &ProblemSvcCfg{
		ValidationConcurrency: getIntEnv("VALIDATION_CONCURRENCY", 2),
	}
}
