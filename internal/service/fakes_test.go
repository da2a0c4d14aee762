package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/repository"
)

// In-memory repositories mirroring the Postgres implementations closely
// enough for service tests: CreateLoan enforces the copy capacity check
// and appends to the member's active list, CompleteLoan migrates the
// entry between the relation lists.

type fakeBookRepo struct {
	books  map[string]*domain.Book // keyed by internal id
	nextID int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[string]*domain.Book{}}
}

func (r *fakeBookRepo) seed(book domain.Book) *domain.Book {
	r.nextID++
	book.ID = fmt.Sprintf("book-%d", r.nextID)
	stored := book
	r.books[stored.ID] = &stored
	return &stored
}

func (r *fakeBookRepo) Create(ctx context.Context, book *domain.Book) error {
	r.nextID++
	book.ID = fmt.Sprintf("book-%d", r.nextID)
	stored := *book
	r.books[stored.ID] = &stored
	return nil
}

func (r *fakeBookRepo) Update(ctx context.Context, book *domain.Book) error {
	if _, ok := r.books[book.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *book
	r.books[stored.ID] = &stored
	return nil
}

func (r *fakeBookRepo) Delete(ctx context.Context, key string) error {
	for id, book := range r.books {
		if id == key || book.BookID == key {
			delete(r.books, id)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeBookRepo) GetByBookID(ctx context.Context, bookID string) (*domain.Book, error) {
	for _, book := range r.books {
		if book.BookID == bookID {
			copied := *book
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeBookRepo) GetByKey(ctx context.Context, key string) (*domain.Book, error) {
	if book, ok := r.books[key]; ok {
		copied := *book
		return &copied, nil
	}
	return r.GetByBookID(ctx, key)
}

func (r *fakeBookRepo) List(ctx context.Context) ([]domain.Book, error) {
	out := make([]domain.Book, 0, len(r.books))
	for _, book := range r.books {
		out = append(out, *book)
	}
	return out, nil
}

type fakeMemberRepo struct {
	members map[string]*domain.Member
	nextID  int
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[string]*domain.Member{}}
}

func (r *fakeMemberRepo) seed(member domain.Member) *domain.Member {
	r.nextID++
	member.ID = fmt.Sprintf("member-%d", r.nextID)
	stored := member
	r.members[stored.ID] = &stored
	return &stored
}

func (r *fakeMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	r.nextID++
	member.ID = fmt.Sprintf("member-%d", r.nextID)
	stored := *member
	r.members[stored.ID] = &stored
	return nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *member
	r.members[stored.ID] = &stored
	return nil
}

func (r *fakeMemberRepo) UpdateProfile(ctx context.Context, id string, age int, gender, dob, address string) error {
	member, ok := r.members[id]
	if !ok {
		return pgx.ErrNoRows
	}
	member.Age = age
	member.Gender = gender
	member.DOB = dob
	member.Address = address
	return nil
}

func (r *fakeMemberRepo) UpdatePhoto(ctx context.Context, id, photo string) error {
	member, ok := r.members[id]
	if !ok {
		return pgx.ErrNoRows
	}
	member.Photo = photo
	return nil
}

func (r *fakeMemberRepo) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *member
	copied.ActiveTransactions = append([]string(nil), member.ActiveTransactions...)
	copied.PrevTransactions = append([]string(nil), member.PrevTransactions...)
	return &copied, nil
}

func (r *fakeMemberRepo) GetByEmail(ctx context.Context, email string) (*domain.Member, error) {
	for _, member := range r.members {
		if member.Email == email {
			copied := *member
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeMemberRepo) ListMembers(ctx context.Context) ([]domain.Member, error) {
	out := make([]domain.Member, 0, len(r.members))
	for _, member := range r.members {
		if member.UserType == domain.UserTypeStudent || member.UserType == domain.UserTypeStaff {
			out = append(out, *member)
		}
	}
	return out, nil
}

type fakeTransactionRepo struct {
	books   *fakeBookRepo
	members *fakeMemberRepo
	txns    map[string]*domain.Transaction
	order   []string
	nextID  int
}

func newFakeTransactionRepo(books *fakeBookRepo, members *fakeMemberRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{
		books:   books,
		members: members,
		txns:    map[string]*domain.Transaction{},
	}
}

func (r *fakeTransactionRepo) seed(txn domain.Transaction) *domain.Transaction {
	r.nextID++
	txn.ID = fmt.Sprintf("txn-%d", r.nextID)
	stored := txn
	r.txns[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return &stored
}

func (r *fakeTransactionRepo) CreateLoan(ctx context.Context, txn *domain.Transaction) error {
	book, err := r.books.GetByBookID(ctx, txn.BookID)
	if err != nil {
		return err
	}
	if txn.TransactionType == domain.TransactionTypeIssued {
		issued := 0
		for _, existing := range r.txns {
			if existing.BookID == book.BookID &&
				existing.TransactionType == domain.TransactionTypeIssued &&
				existing.TransactionStatus == domain.TransactionStatusActive {
				issued++
			}
		}
		if issued >= book.Copies {
			return repository.ErrNoCopiesAvailable
		}
	}

	r.nextID++
	txn.ID = fmt.Sprintf("txn-%d", r.nextID)
	txn.CreatedAt = time.Now()
	stored := *txn
	r.txns[stored.ID] = &stored
	r.order = append(r.order, stored.ID)

	if txn.MemberID != nil {
		if member, ok := r.members.members[*txn.MemberID]; ok {
			member.ActiveTransactions = append(member.ActiveTransactions, stored.ID)
		}
	}
	return nil
}

func (r *fakeTransactionRepo) CompleteLoan(ctx context.Context, memberID, transactionID, returnDate string) error {
	txn, ok := r.txns[transactionID]
	if !ok {
		return pgx.ErrNoRows
	}
	txn.TransactionStatus = domain.TransactionStatusCompleted
	date := returnDate
	txn.ReturnDate = &date

	member, ok := r.members.members[memberID]
	if !ok {
		return pgx.ErrNoRows
	}
	active := member.ActiveTransactions[:0]
	for _, id := range member.ActiveTransactions {
		if id != transactionID {
			active = append(active, id)
		}
	}
	member.ActiveTransactions = active
	for _, id := range member.PrevTransactions {
		if id == transactionID {
			return nil
		}
	}
	member.PrevTransactions = append(member.PrevTransactions, transactionID)
	return nil
}

func (r *fakeTransactionRepo) Update(ctx context.Context, txn *domain.Transaction) error {
	if _, ok := r.txns[txn.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *txn
	r.txns[stored.ID] = &stored
	return nil
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	txn, ok := r.txns[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *txn
	return &copied, nil
}

func (r *fakeTransactionRepo) List(ctx context.Context) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		out = append(out, *r.txns[r.order[i]])
	}
	return out, nil
}

func (r *fakeTransactionRepo) ListActiveByBook(ctx context.Context, bookID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, id := range r.order {
		txn := r.txns[id]
		if txn.BookID == bookID && txn.TransactionStatus == domain.TransactionStatusActive {
			out = append(out, *txn)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) ListByIDs(ctx context.Context, ids []string) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0, len(ids))
	for _, id := range ids {
		if txn, ok := r.txns[id]; ok {
			out = append(out, *txn)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.txns)), nil
}

type fakeCategoryRepo struct {
	categories []domain.Category
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	category.ID = fmt.Sprintf("cat-%d", len(r.categories)+1)
	r.categories = append(r.categories, *category)
	return nil
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), r.categories...), nil
}
