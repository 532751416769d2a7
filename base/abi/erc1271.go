package abi

// ERC1271ABI is the EIP-1271 signature validation interface, used to verify
// signatures made by contract wallets
var ERC1271ABI = mustParse(erc1271ABIJson)

var erc1271ABIJson = `
[
  {
    "inputs": [
      {
        "internalType": "bytes32",
        "name": "_hash",
        "type": "bytes32"
      },
      {
        "internalType": "bytes",
        "name": "_signature",
        "type": "bytes"
      }
    ],
    "name": "isValidSignature",
    "outputs": [
      {
        "internalType": "bytes4",
        "name": "magicValue",
        "type": "bytes4"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  }
]
`
