package patient

type Patient struct {
	ID           int64
	Name         string
	Age          int
	PasswordHash string
}
