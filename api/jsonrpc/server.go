// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package jsonrpc

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"go.uber.org/zap"

	"github.com/ava-labs/provisionvm/api"
	"github.com/ava-labs/provisionvm/chain"
	"github.com/ava-labs/provisionvm/codec"
	"github.com/ava-labs/provisionvm/consts"
	"github.com/ava-labs/provisionvm/rent"
)

const Endpoint = "/provisionapi"

var (
	ErrTxExtraBytes = errors.New("tx has extra bytes")

	_ api.HandlerFactory[api.VM] = (*JSONRPCServerFactory)(nil)
)

type JSONRPCServerFactory struct{}

func (JSONRPCServerFactory) New(vm api.VM) (api.Handler, error) {
	handler, err := api.NewJSONRPCHandler(api.Name, NewJSONRPCServer(vm))
	if err != nil {
		return api.Handler{}, err
	}
	return api.Handler{
		Path:    Endpoint,
		Handler: handler,
	}, nil
}

type JSONRPCServer struct {
	vm api.VM
}

func NewJSONRPCServer(vm api.VM) *JSONRPCServer {
	return &JSONRPCServer{vm}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.vm.Logger().Info("ping")
	reply.Success = true
	return nil
}

type NetworkReply struct {
	NetworkID uint32 `json:"networkId"`
	ChainID   ids.ID `json:"chainId"`
}

func (j *JSONRPCServer) Network(_ *http.Request, _ *struct{}, reply *NetworkReply) (err error) {
	reply.NetworkID = j.vm.NetworkID()
	reply.ChainID = j.vm.ChainID()
	return nil
}

type RulesReply struct {
	ValidityWindow     int64         `json:"validityWindow"`
	MaxActionsPerTx    uint8         `json:"maxActionsPerTx"`
	MaxAccountDataSize uint64        `json:"maxAccountDataSize"`
	RentAuthority      codec.Address `json:"rentAuthority"`
}

func (j *JSONRPCServer) Rules(_ *http.Request, _ *struct{}, reply *RulesReply) (err error) {
	r := j.vm.Rules()
	reply.ValidityWindow = r.GetValidityWindow()
	reply.MaxActionsPerTx = r.GetMaxActionsPerTx()
	reply.MaxAccountDataSize = r.GetMaxAccountDataSize()
	reply.RentAuthority = r.GetRentAuthority()
	return nil
}

type ProgramIDReply struct {
	ProgramID string `json:"programId"`
}

func (j *JSONRPCServer) ProgramID(_ *http.Request, _ *struct{}, reply *ProgramIDReply) (err error) {
	reply.ProgramID = codec.ProgramIDString(j.vm.ProgramID())
	return nil
}

type LastAcceptedReply struct {
	Height    uint64 `json:"height"`
	BlockID   ids.ID `json:"blockId"`
	Timestamp int64  `json:"timestamp"`
}

func (j *JSONRPCServer) LastAccepted(_ *http.Request, _ *struct{}, reply *LastAcceptedReply) error {
	reply.BlockID, reply.Height, reply.Timestamp = j.vm.LastAcceptedBlock()
	return nil
}

type SubmitTxArgs struct {
	Tx []byte `json:"tx"`
}

type SubmitTxReply struct {
	TxID   ids.ID        `json:"txId"`
	Height uint64        `json:"height"`
	Result *chain.Result `json:"result"`
}

func (j *JSONRPCServer) SubmitTx(
	req *http.Request,
	args *SubmitTxArgs,
	reply *SubmitTxReply,
) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	rtx := codec.NewReader(args.Tx, consts.NetworkSizeLimit) // will likely be much smaller than this
	tx, err := chain.UnmarshalTx(rtx, j.vm.ActionRegistry(), j.vm.AuthRegistry())
	if err != nil {
		return fmt.Errorf("%w: unable to unmarshal on public service", err)
	}
	if !rtx.Empty() {
		return ErrTxExtraBytes
	}
	height, result, err := j.vm.SubmitTx(ctx, tx)
	if err != nil {
		j.vm.Logger().Debug("dropped submitted tx",
			zap.Stringer("txID", tx.ID()),
			zap.Error(err),
		)
		return err
	}
	reply.TxID = tx.ID()
	reply.Height = height
	reply.Result = result
	return nil
}

type GetTxArgs struct {
	TxID ids.ID `json:"txId"`
}

type GetTxReply struct {
	Found     bool     `json:"found"`
	Height    uint64   `json:"height"`
	Timestamp int64    `json:"timestamp"`
	Success   bool     `json:"success"`
	Error     []byte   `json:"error"`
	Outputs   [][]byte `json:"outputs"`
}

func (j *JSONRPCServer) GetTx(req *http.Request, args *GetTxArgs, reply *GetTxReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.GetTx")
	defer span.End()

	tx, found, err := j.vm.GetTx(ctx, args.TxID)
	if err != nil || !found {
		return err
	}
	reply.Found = true
	reply.Height = tx.Height
	reply.Timestamp = tx.Timestamp
	reply.Success = tx.Success
	reply.Error = tx.Error
	reply.Outputs = tx.Outputs
	return nil
}

type AddressArgs struct {
	Address string `json:"address"` // bech32
}

type BalanceReply struct {
	Amount uint64 `json:"amount"`
}

func (j *JSONRPCServer) Balance(req *http.Request, args *AddressArgs, reply *BalanceReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Balance")
	defer span.End()

	addr, err := codec.ParseAddressBech32(consts.HRP, args.Address)
	if err != nil {
		return err
	}
	balance, err := j.vm.Balance(ctx, addr)
	if err != nil {
		return err
	}
	reply.Amount = balance
	return nil
}

type AccountReply struct {
	Balance uint64 `json:"balance"`
	Owner   string `json:"owner"` // base58, empty if unowned
	Space   uint64 `json:"space"`
	Data    []byte `json:"data"`
}

func (j *JSONRPCServer) Account(req *http.Request, args *AddressArgs, reply *AccountReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Account")
	defer span.End()

	addr, err := codec.ParseAddressBech32(consts.HRP, args.Address)
	if err != nil {
		return err
	}
	acct, data, err := j.vm.Account(ctx, addr)
	if err != nil {
		return err
	}
	reply.Balance = acct.Balance
	if acct.Owner != codec.EmptyAddress {
		reply.Owner = codec.ProgramIDString(acct.Owner)
	}
	reply.Space = acct.Space
	reply.Data = data
	return nil
}

type RentReply struct {
	Schedule rent.Schedule `json:"schedule"`
}

func (j *JSONRPCServer) Rent(req *http.Request, _ *struct{}, reply *RentReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.Rent")
	defer span.End()

	schedule, err := j.vm.RentSchedule(ctx)
	if err != nil {
		return err
	}
	reply.Schedule = schedule
	return nil
}

type MinimumBalanceArgs struct {
	Space uint64 `json:"space"`
}

type MinimumBalanceReply struct {
	Lamports uint64 `json:"lamports"`
}

func (j *JSONRPCServer) MinimumBalance(req *http.Request, args *MinimumBalanceArgs, reply *MinimumBalanceReply) error {
	ctx, span := j.vm.Tracer().Start(req.Context(), "JSONRPCServer.MinimumBalance")
	defer span.End()

	lamports, err := j.vm.MinimumBalance(ctx, args.Space)
	if err != nil {
		return err
	}
	reply.Lamports = lamports
	return nil
}
