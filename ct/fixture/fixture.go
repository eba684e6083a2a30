// Package fixture serializes ct/eip test cases into the two JSON formats
// described in spec §6: a compact native format and a format compatible
// with the wider Ethereum test-fixture ecosystem.
package fixture

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/evm-assure/evmcore/core"
	"github.com/evm-assure/evmcore/ct/eip"
)

// nativeCase mirrors spec §6's native per-case object exactly, including
// field names and the string/bool/int-or-null typing JSON needs.
type nativeCase struct {
	Name            string  `json:"name"`
	Strategy        string  `json:"strategy"`
	Bytecode        string  `json:"bytecode"`
	GasLimit        uint64  `json:"gas_limit"`
	ExpectedSuccess bool    `json:"expected_success"`
	ExpectedGasUsed *uint64 `json:"expected_gas_used"`
	Description     string  `json:"description"`
}

// nativeFixture mirrors spec §6's native top-level object.
type nativeFixture struct {
	EIPNumber   int          `json:"eip_number"`
	EIPTitle    string       `json:"eip_title"`
	GeneratedAt string       `json:"generated_at"`
	TestCases   []nativeCase `json:"test_cases"`
}

// Native serializes cases for e into spec §6's native JSON format.
// generatedAt is taken as a parameter rather than read from time.Now()
// internally, so the same (e, cases, generatedAt) always serializes to
// the same bytes.
func Native(e eip.Entry, cases []eip.TestCase, generatedAt time.Time) ([]byte, error) {
	out := nativeFixture{
		EIPNumber:   e.Number,
		EIPTitle:    e.Title,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		TestCases:   make([]nativeCase, len(cases)),
	}
	for i, c := range cases {
		nc := nativeCase{
			Name:        c.Name,
			Strategy:    string(c.Strategy),
			Bytecode:    hex.EncodeToString(c.Bytecode),
			GasLimit:    uint64(c.GasLimit),
			Description: c.Description,
		}
		if c.ExpectedSuccess != nil {
			nc.ExpectedSuccess = *c.ExpectedSuccess
		}
		if c.ExpectedGasUsed != nil {
			v := uint64(*c.ExpectedGasUsed)
			nc.ExpectedGasUsed = &v
		}
		out.TestCases[i] = nc
	}
	return json.MarshalIndent(out, "", "  ")
}

// ecosystemAccount mirrors spec §6's pre[address] object.
type ecosystemAccount struct {
	Balance string            `json:"balance"`
	Code    string            `json:"code"`
	Nonce   string            `json:"nonce"`
	Storage map[string]string `json:"storage"`
}

type ecosystemEnv struct {
	CurrentNumber    string `json:"currentNumber"`
	CurrentGasLimit  string `json:"currentGasLimit"`
	CurrentTimestamp string `json:"currentTimestamp"`
}

type ecosystemTransaction struct {
	To       string `json:"to"`
	GasLimit string `json:"gasLimit"`
	Data     string `json:"data"`
}

type ecosystemCase struct {
	Env         ecosystemEnv                 `json:"env"`
	Pre         map[string]ecosystemAccount  `json:"pre"`
	Transaction ecosystemTransaction         `json:"transaction"`
}

// deployer and contract mirror the fixed addresses the rest of the ct
// packages use to deploy and execute a probe; the ecosystem format needs
// concrete addresses to populate pre, where the native format does not.
var (
	deployer = core.Address{0xDE, 0x70, 0x03}
	contract = core.Address{0xC0, 0xDE, 0x03}
)

// Ecosystem serializes cases into spec §6's Ethereum-ecosystem-compatible
// JSON format: one top-level key per case, each describing a minimal
// environment, a pre-state with the probe deployed at a fixed address,
// and the transaction that invokes it.
func Ecosystem(cases []eip.TestCase) ([]byte, error) {
	out := make(map[string]ecosystemCase, len(cases))
	for _, c := range cases {
		out[c.Name] = ecosystemCase{
			Env: ecosystemEnv{
				CurrentNumber:    hexUint(1_000_000),
				CurrentGasLimit:  hexUint(30_000_000),
				CurrentTimestamp: hexUint(1_700_000_000),
			},
			Pre: map[string]ecosystemAccount{
				hexAddress(deployer): {
					Balance: hexUint(1 << 62),
					Code:    "0x",
					Nonce:   "0x0",
					Storage: map[string]string{},
				},
				hexAddress(contract): {
					Balance: "0x0",
					Code:    "0x" + hex.EncodeToString(c.Bytecode),
					Nonce:   "0x0",
					Storage: map[string]string{},
				},
			},
			Transaction: ecosystemTransaction{
				To:       hexAddress(contract),
				GasLimit: hexUint(uint64(c.GasLimit)),
				Data:     "0x",
			},
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

func hexUint(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}

func hexAddress(a core.Address) string {
	return "0x" + hex.EncodeToString(a[:])
}
