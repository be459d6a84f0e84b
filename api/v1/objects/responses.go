package objects

type ResponseBackends struct {
	Backends []string `json:"backends"`
}
