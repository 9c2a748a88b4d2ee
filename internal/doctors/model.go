package doctors

// Doctor is static reference data describing one practitioner.
type Doctor struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Education      string `json:"education"`
	Experience     string `json:"experience"`
	Fee            int    `json:"fee"`
	Contact        string `json:"contact"`
	Bio            string `json:"bio"`
}
