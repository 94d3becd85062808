package ledger

import (
	"errors"
	"testing"
	"time"

	"bizledger/internal/database"
	"bizledger/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	// a second connection would see its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	userID := uuid.NewString()
	user := models.User{ID: userID, Username: "tester", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}

	return NewService(db), userID
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func makeAccount(t *testing.T, s *Service, userID, name, balance, commission string) *models.Account {
	t.Helper()
	acc, err := s.CreateAccount(userID, AccountInput{
		Name:       name,
		Balance:    dec(balance),
		Commission: dec(commission),
	})
	if err != nil {
		t.Fatalf("create account %s: %v", name, err)
	}
	return acc
}

func balanceOf(t *testing.T, s *Service, userID, accountID string) decimal.Decimal {
	t.Helper()
	acc, err := s.GetAccount(userID, accountID)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	return acc.Balance
}

func wantBalance(t *testing.T, s *Service, userID, accountID, want string) {
	t.Helper()
	got := balanceOf(t, s, userID, accountID)
	if !got.Equal(dec(want)) {
		t.Errorf("balance = %s, want %s", got, want)
	}
}

var testDate = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

// ---------- expense ----------

func TestExpenseCreateDebitsAccount(t *testing.T) {
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "100", "0")

	_, err := s.CreateExpense(uid, ExpenseInput{
		AccountID: acc.ID,
		Amount:    dec("30"),
		Category:  "office",
		Date:      testDate,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	wantBalance(t, s, uid, acc.ID, "70")
}

func TestExpenseEditRevertRestoresBalance(t *testing.T) {
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "100", "0")

	exp, err := s.CreateExpense(uid, ExpenseInput{
		AccountID: acc.ID,
		Amount:    dec("30"),
		Date:      testDate,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	if _, err := s.UpdateExpense(uid, exp.ID, ExpenseInput{
		AccountID: acc.ID,
		Amount:    dec("55"),
		Date:      testDate,
	}); err != nil {
		t.Fatalf("update expense: %v", err)
	}
	wantBalance(t, s, uid, acc.ID, "45")

	// revert to the original values
	if _, err := s.UpdateExpense(uid, exp.ID, ExpenseInput{
		AccountID: acc.ID,
		Amount:    dec("30"),
		Date:      testDate,
	}); err != nil {
		t.Fatalf("revert expense: %v", err)
	}
	wantBalance(t, s, uid, acc.ID, "70")
}

func TestExpenseDeleteRestoresBalance(t *testing.T) {
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "100", "0")

	exp, err := s.CreateExpense(uid, ExpenseInput{
		AccountID: acc.ID,
		Amount:    dec("30"),
		Date:      testDate,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	if err := s.DeleteExpense(uid, exp.ID); err != nil {
		t.Fatalf("delete expense: %v", err)
	}

	wantBalance(t, s, uid, acc.ID, "100")
}

func TestExpenseEditMovesAccounts(t *testing.T) {
	s, uid := newTestService(t)
	a := makeAccount(t, s, uid, "a", "100", "0")
	b := makeAccount(t, s, uid, "b", "100", "0")

	exp, err := s.CreateExpense(uid, ExpenseInput{
		AccountID: a.ID,
		Amount:    dec("40"),
		Date:      testDate,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	// moving the expense to account b must credit a back and debit b
	if _, err := s.UpdateExpense(uid, exp.ID, ExpenseInput{
		AccountID: b.ID,
		Amount:    dec("40"),
		Date:      testDate,
	}); err != nil {
		t.Fatalf("update expense: %v", err)
	}

	wantBalance(t, s, uid, a.ID, "100")
	wantBalance(t, s, uid, b.ID, "60")
}

func TestExpenseMissingAccountAborts(t *testing.T) {
	s, uid := newTestService(t)

	_, err := s.CreateExpense(uid, ExpenseInput{
		AccountID: uuid.NewString(),
		Amount:    dec("30"),
		Date:      testDate,
	})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestExpenseEditToMissingAccountLeavesBalances(t *testing.T) {
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "100", "0")

	exp, err := s.CreateExpense(uid, ExpenseInput{
		AccountID: acc.ID,
		Amount:    dec("30"),
		Date:      testDate,
	})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}

	_, err = s.UpdateExpense(uid, exp.ID, ExpenseInput{
		AccountID: uuid.NewString(),
		Amount:    dec("60"),
		Date:      testDate,
	})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}

	// the failed edit must not have moved anything
	wantBalance(t, s, uid, acc.ID, "70")
}

func TestExpenseValidation(t *testing.T) {
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "100", "0")

	_, err := s.CreateExpense(uid, ExpenseInput{
		AccountID: acc.ID,
		Amount:    dec("0"),
		Date:      testDate,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	wantBalance(t, s, uid, acc.ID, "100")
}

// ---------- income ----------

func TestIncomeCommissionSplit(t *testing.T) {
	// balance 100, commission 0.05, amountPaid 200
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "100", "0.05")

	inc, err := s.CreateIncome(uid, IncomeInput{
		AccountID:             acc.ID,
		AmountPaid:            dec("200"),
		TotalContractedAmount: dec("500"),
		Date:                  testDate,
	})
	if err != nil {
		t.Fatalf("create income: %v", err)
	}

	if !inc.CommissionAmount.Equal(dec("10")) {
		t.Errorf("commissionAmount = %s, want 10", inc.CommissionAmount)
	}
	if !inc.AmountWithCommission.Equal(dec("190")) {
		t.Errorf("amountWithCommission = %s, want 190", inc.AmountWithCommission)
	}
	if !inc.RemainingBalance.Equal(dec("300")) {
		t.Errorf("remainingBalance = %s, want 300", inc.RemainingBalance)
	}
	if !inc.CommissionAmount.Add(inc.AmountWithCommission).Equal(inc.AmountPaid) {
		t.Errorf("commission + net = %s, want %s",
			inc.CommissionAmount.Add(inc.AmountWithCommission), inc.AmountPaid)
	}
	wantBalance(t, s, uid, acc.ID, "290")
}

func TestIncomeDeleteRestoresBalance(t *testing.T) {
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "100", "0.05")

	inc, err := s.CreateIncome(uid, IncomeInput{
		AccountID:             acc.ID,
		AmountPaid:            dec("200"),
		TotalContractedAmount: dec("200"),
		Date:                  testDate,
	})
	if err != nil {
		t.Fatalf("create income: %v", err)
	}
	if err := s.DeleteIncome(uid, inc.ID); err != nil {
		t.Fatalf("delete income: %v", err)
	}

	wantBalance(t, s, uid, acc.ID, "100")
}

func TestIncomeEditUsesCurrentCommission(t *testing.T) {
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "0", "0.05")

	inc, err := s.CreateIncome(uid, IncomeInput{
		AccountID:             acc.ID,
		AmountPaid:            dec("100"),
		TotalContractedAmount: dec("100"),
		Date:                  testDate,
	})
	if err != nil {
		t.Fatalf("create income: %v", err)
	}
	wantBalance(t, s, uid, acc.ID, "95")

	// raising the rate and re-saving recomputes with the new rate
	if _, err := s.UpdateAccount(uid, acc.ID, AccountInput{
		Name:       "main",
		Commission: dec("0.10"),
	}); err != nil {
		t.Fatalf("update account: %v", err)
	}

	inc2, err := s.UpdateIncome(uid, inc.ID, IncomeInput{
		AccountID:             acc.ID,
		AmountPaid:            dec("100"),
		TotalContractedAmount: dec("100"),
		Date:                  testDate,
	})
	if err != nil {
		t.Fatalf("update income: %v", err)
	}
	if !inc2.CommissionAmount.Equal(dec("10")) {
		t.Errorf("commissionAmount = %s, want 10", inc2.CommissionAmount)
	}
	wantBalance(t, s, uid, acc.ID, "90")
}

// ---------- transactions ----------

func TestWithdrawalDebitsAccount(t *testing.T) {
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "100", "0")

	_, err := s.CreateTransaction(uid, TransactionInput{
		Type:      models.TransactionWithdrawal,
		AccountID: acc.ID,
		Amount:    dec("25"),
		Date:      testDate,
	})
	if err != nil {
		t.Fatalf("create withdrawal: %v", err)
	}

	wantBalance(t, s, uid, acc.ID, "75")
}

func TestTransferConservesTotal(t *testing.T) {
	// transfer 50 from A(290) to B(0)
	s, uid := newTestService(t)
	a := makeAccount(t, s, uid, "a", "290", "0")
	b := makeAccount(t, s, uid, "b", "0", "0")

	trx, err := s.CreateTransaction(uid, TransactionInput{
		Type:                 models.TransactionTransfer,
		AccountID:            a.ID,
		DestinationAccountID: b.ID,
		Amount:               dec("50"),
		Date:                 testDate,
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}

	wantBalance(t, s, uid, a.ID, "240")
	wantBalance(t, s, uid, b.ID, "50")

	total := balanceOf(t, s, uid, a.ID).Add(balanceOf(t, s, uid, b.ID))
	if !total.Equal(dec("290")) {
		t.Errorf("combined balance = %s, want 290", total)
	}

	// deleting the transfer restores both sides
	if err := s.DeleteTransaction(uid, trx.ID); err != nil {
		t.Fatalf("delete transfer: %v", err)
	}
	wantBalance(t, s, uid, a.ID, "290")
	wantBalance(t, s, uid, b.ID, "0")
}

func TestTransferEditReroutesAccounts(t *testing.T) {
	s, uid := newTestService(t)
	a := makeAccount(t, s, uid, "a", "100", "0")
	b := makeAccount(t, s, uid, "b", "100", "0")
	c := makeAccount(t, s, uid, "c", "100", "0")

	trx, err := s.CreateTransaction(uid, TransactionInput{
		Type:                 models.TransactionTransfer,
		AccountID:            a.ID,
		DestinationAccountID: b.ID,
		Amount:               dec("20"),
		Date:                 testDate,
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}

	// redirect the transfer to c: b gives the 20 back, c receives it
	if _, err := s.UpdateTransaction(uid, trx.ID, TransactionInput{
		Type:                 models.TransactionTransfer,
		AccountID:            a.ID,
		DestinationAccountID: c.ID,
		Amount:               dec("20"),
		Date:                 testDate,
	}); err != nil {
		t.Fatalf("update transfer: %v", err)
	}

	wantBalance(t, s, uid, a.ID, "80")
	wantBalance(t, s, uid, b.ID, "100")
	wantBalance(t, s, uid, c.ID, "120")
}

func TestTransferToWithdrawalEdit(t *testing.T) {
	s, uid := newTestService(t)
	a := makeAccount(t, s, uid, "a", "100", "0")
	b := makeAccount(t, s, uid, "b", "100", "0")

	trx, err := s.CreateTransaction(uid, TransactionInput{
		Type:                 models.TransactionTransfer,
		AccountID:            a.ID,
		DestinationAccountID: b.ID,
		Amount:               dec("20"),
		Date:                 testDate,
	})
	if err != nil {
		t.Fatalf("create transfer: %v", err)
	}

	if _, err := s.UpdateTransaction(uid, trx.ID, TransactionInput{
		Type:      models.TransactionWithdrawal,
		AccountID: a.ID,
		Amount:    dec("10"),
		Date:      testDate,
	}); err != nil {
		t.Fatalf("update transaction: %v", err)
	}

	wantBalance(t, s, uid, a.ID, "90")
	wantBalance(t, s, uid, b.ID, "100")
}

func TestTransferValidation(t *testing.T) {
	s, uid := newTestService(t)
	a := makeAccount(t, s, uid, "a", "100", "0")

	_, err := s.CreateTransaction(uid, TransactionInput{
		Type:                 models.TransactionTransfer,
		AccountID:            a.ID,
		DestinationAccountID: a.ID,
		Amount:               dec("20"),
		Date:                 testDate,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	wantBalance(t, s, uid, a.ID, "100")
}

// ---------- payroll ----------

func TestPayrollPaymentLifecycle(t *testing.T) {
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "1000", "0")
	emp, err := s.CreateEmployee(uid, EmployeeInput{
		Name:          "Dana",
		MonthlySalary: dec("300"),
	})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}

	pay, err := s.CreatePayrollPayment(uid, PayrollPaymentInput{
		EmployeeID:  emp.ID,
		AccountID:   acc.ID,
		TotalAmount: dec("350"),
		Month:       6,
		Year:        2025,
		Date:        testDate,
	})
	if err != nil {
		t.Fatalf("create payroll payment: %v", err)
	}
	wantBalance(t, s, uid, acc.ID, "650")

	// the companion expense row exists but carries no delta of its own
	expenses, err := s.ListExpenses(uid)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expenses = %d, want 1", len(expenses))
	}
	if expenses[0].PayrollPaymentID == nil || *expenses[0].PayrollPaymentID != pay.ID {
		t.Error("companion expense not linked to payroll payment")
	}
	if !expenses[0].Amount.Equal(dec("350")) {
		t.Errorf("companion amount = %s, want 350", expenses[0].Amount)
	}

	// companion rows are managed only through the payroll payment
	if err := s.DeleteExpense(uid, expenses[0].ID); !errors.Is(err, ErrPayrollExpense) {
		t.Fatalf("delete companion err = %v, want ErrPayrollExpense", err)
	}

	// deleting the payment reverses the debit and removes the companion
	if err := s.DeletePayrollPayment(uid, pay.ID); err != nil {
		t.Fatalf("delete payroll payment: %v", err)
	}
	wantBalance(t, s, uid, acc.ID, "1000")

	expenses, err = s.ListExpenses(uid)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("expenses after delete = %d, want 0", len(expenses))
	}
}

func TestPayrollPaymentEditRevertRestoresBalance(t *testing.T) {
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "1000", "0")
	emp, err := s.CreateEmployee(uid, EmployeeInput{Name: "Dana", MonthlySalary: dec("300")})
	if err != nil {
		t.Fatalf("create employee: %v", err)
	}

	pay, err := s.CreatePayrollPayment(uid, PayrollPaymentInput{
		EmployeeID: emp.ID, AccountID: acc.ID,
		TotalAmount: dec("350"), Month: 6, Year: 2025, Date: testDate,
	})
	if err != nil {
		t.Fatalf("create payroll payment: %v", err)
	}

	if _, err := s.UpdatePayrollPayment(uid, pay.ID, PayrollPaymentInput{
		EmployeeID: emp.ID, AccountID: acc.ID,
		TotalAmount: dec("400"), Month: 6, Year: 2025, Date: testDate,
	}); err != nil {
		t.Fatalf("update payroll payment: %v", err)
	}
	wantBalance(t, s, uid, acc.ID, "600")

	if _, err := s.UpdatePayrollPayment(uid, pay.ID, PayrollPaymentInput{
		EmployeeID: emp.ID, AccountID: acc.ID,
		TotalAmount: dec("350"), Month: 6, Year: 2025, Date: testDate,
	}); err != nil {
		t.Fatalf("revert payroll payment: %v", err)
	}
	wantBalance(t, s, uid, acc.ID, "650")
}

// ---------- accounts ----------

func TestAccountDeleteGuards(t *testing.T) {
	s, uid := newTestService(t)
	acc := makeAccount(t, s, uid, "main", "100", "0")

	if _, err := s.CreateExpense(uid, ExpenseInput{
		AccountID: acc.ID,
		Amount:    dec("10"),
		Date:      testDate,
	}); err != nil {
		t.Fatalf("create expense: %v", err)
	}

	if err := s.DeleteAccount(uid, acc.ID); !errors.Is(err, ErrAccountInUse) {
		t.Fatalf("err = %v, want ErrAccountInUse", err)
	}
}

func TestUserScoping(t *testing.T) {
	s, uid := newTestService(t)
	other := uuid.NewString()
	acc := makeAccount(t, s, uid, "main", "100", "0")

	// another user must not see or mutate this account
	if _, err := s.GetAccount(other, acc.ID); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
	if _, err := s.CreateExpense(other, ExpenseInput{
		AccountID: acc.ID,
		Amount:    dec("10"),
		Date:      testDate,
	}); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
}
