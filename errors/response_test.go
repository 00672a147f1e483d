package errors

import (
	"fmt"
	"testing"
)

func TestInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil error": {
			err:      nil,
			wantCode: SuccessCode,
			wantLog:  "",
		},
		"registered error": {
			err:      ErrUnauthorized,
			wantCode: ErrUnauthorized.code,
			wantLog:  "unauthorized",
		},
		"wrapped registered error": {
			err:      Wrap(Wrap(ErrNotFound, "deposit"), "query"),
			wantCode: ErrNotFound.code,
			wantLog:  "query: deposit: not found",
		},
		"stdlib error is hidden": {
			err:      fmt.Errorf("disk failure at sector 7"),
			wantCode: internalCode,
			wantLog:  internalLog,
		},
		"field error keeps the code": {
			err:      Field("Amount", ErrAmount, "negative"),
			wantCode: ErrAmount.code,
			wantLog:  `field "Amount": negative: invalid amount`,
		},
		"panic details are hidden": {
			err:      Wrap(ErrPanic, "nil map"),
			wantCode: ErrPanic.code,
			wantLog:  internalLog,
		},
		"multi error uses the first code": {
			err:      Append(ErrEmpty, ErrState),
			wantCode: ErrEmpty.code,
			wantLog:  "2 errors occurred:\n\t* value is empty\n\t* invalid state\n",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := Info(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if err := Redact(ErrPanic, false); ErrPanic.Is(err) {
		t.Error("panic must be redacted")
	}
	if err := Redact(ErrUnauthorized, false); !ErrUnauthorized.Is(err) {
		t.Error("registered errors must not be redacted")
	}
	if err := Redact(fmt.Errorf("secret"), false); err.Error() != internalLog {
		t.Errorf("unexpected redacted error: %s", err)
	}
	if err := Redact(ErrPanic, true); !ErrPanic.Is(err) {
		t.Error("debug mode must not redact")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("reusing a code must panic")
		}
	}()
	Register(ErrNotFound.code, "again")
}
