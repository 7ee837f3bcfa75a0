package repoargs

type RepositoryName string

const (
	UserRepoName     RepositoryName = "user"
	AccountRepoName  RepositoryName = "account"
	ProductRepoName  RepositoryName = "product"
	AddressRepoName  RepositoryName = "address"
	OrderRepoName    RepositoryName = "order"
	PaymentRepoName  RepositoryName = "payment"
	CommentRepoName  RepositoryName = "comment"
	ReviewRepoName   RepositoryName = "review"
	FeaturedRepoName RepositoryName = "featured"
)
