package repoargs

type CreateAddress struct {
	UserID  int64
	Address string
}

type UpdateAddress struct {
	Address string
}
